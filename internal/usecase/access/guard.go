package access

import (
	"github.com/pkg/errors"

	"tg-media-bot/internal/domain"
)

// Guard проверяет, что запрос пришёл из чата разработчика.
type Guard struct {
	developer int64
}

// NewGuard создаёт проверку доступа для указанного чата.
func NewGuard(developerChatID int64) *Guard {
	return &Guard{developer: developerChatID}
}

// Check возвращает domain.ErrUnauthorized для любого чужого чата.
// Побочных эффектов нет: отказ всплывает наверх и попадает в отчёт,
// а не глотается молча.
func (g *Guard) Check(chatID int64) error {
	if chatID != g.developer {
		return errors.Wrapf(domain.ErrUnauthorized, "chat %d", chatID)
	}
	return nil
}

package report

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"tg-media-bot/internal/domain"
	"tg-media-bot/internal/infra/metrics"
)

// Reporter отправляет разработчику отчёты о необработанных ошибках.
type Reporter struct {
	messenger domain.Messenger
	developer int64
	log       zerolog.Logger
}

// NewReporter создаёт репортер.
func NewReporter(messenger domain.Messenger, developerChatID int64, log zerolog.Logger) *Reporter {
	return &Reporter{messenger: messenger, developer: developerChatID, log: log}
}

// Report строит отчёт и отправляет его в чат разработчика одним
// HTML-сообщением (мессенджер сам режет текст по лимиту Telegram).
// Ошибка отправки возвращается вызывающему и там только логируется:
// повторов и повторных отчётов нет.
func (r *Reporter) Report(ctx context.Context, ev domain.InboundEvent, aux domain.AuxState, failure error) error {
	metrics.IncErrorReport()
	message := BuildMessage(ev, aux, failure)
	if err := r.messenger.SendHTML(ctx, r.developer, message); err != nil {
		return errors.Wrap(err, "send error report")
	}
	r.log.Debug().Int("update_id", ev.UpdateID).Msg("отчёт об ошибке отправлен")
	return nil
}

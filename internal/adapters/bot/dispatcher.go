package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tg-media-bot/internal/domain"
	"tg-media-bot/internal/infra/metrics"
)

// Dispatcher получает апдейты long polling-ом, классифицирует их в доменные
// события и прогоняет через обработчики. Любая ошибка обработчика ловится
// здесь один раз и уходит репортеру; сами обработчики ничего не ретраят.
// Вспомогательным состоянием чатов и пользователей владеет диспетчер.
type Dispatcher struct {
	bot         *tgbotapi.BotAPI
	handler     *Handler
	reporter    domain.FailureReporter
	log         zerolog.Logger
	pollTimeout int

	// Апдейты обрабатываются последовательно, поэтому доступ к этим
	// картам не требует блокировок.
	chatData map[int64]map[string]any
	userData map[int64]map[string]any
}

// NewDispatcher создаёт диспетчер.
func NewDispatcher(api *tgbotapi.BotAPI, handler *Handler, reporter domain.FailureReporter, pollTimeout int, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		bot:         api,
		handler:     handler,
		reporter:    reporter,
		log:         log,
		pollTimeout: pollTimeout,
		chatData:    make(map[int64]map[string]any),
		userData:    make(map[int64]map[string]any),
	}
}

// Run крутит цикл получения апдейтов до отмены контекста.
func (d *Dispatcher) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = d.pollTimeout
	updates := d.bot.GetUpdatesChan(cfg)
	defer d.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			d.Dispatch(ctx, upd)
		}
	}
}

// Dispatch обрабатывает один апдейт.
func (d *Dispatcher) Dispatch(ctx context.Context, upd tgbotapi.Update) {
	ev, ok := Classify(upd)
	if !ok {
		d.log.Debug().Int("update_id", upd.UpdateID).Msg("апдейт без подходящего события")
		return
	}
	metrics.IncUpdate(string(ev.Kind))

	traceID := uuid.NewString()
	logger := d.log.With().
		Str("trace_id", traceID).
		Int64("chat", ev.ChatID).
		Str("kind", string(ev.Kind)).
		Logger()

	aux := d.touch(ev, traceID)

	fn := d.handler.Route(ev)
	if fn == nil {
		logger.Debug().Str("command", ev.Command).Msg("обработчик не зарегистрирован")
		return
	}

	err := fn(ctx, ev)
	if err == nil {
		return
	}

	// Сначала лог, потом отчёт: ошибка должна быть видна, даже если
	// отправка отчёта сломается.
	logger.Error().Err(err).Int("update_id", ev.UpdateID).Msg("ошибка обработки апдейта")
	metrics.IncHandlerError(string(ev.Kind))
	if rerr := d.reporter.Report(ctx, ev, aux, err); rerr != nil {
		logger.Error().Err(rerr).Msg("не удалось отправить отчёт об ошибке")
	}
}

// touch обновляет вспомогательное состояние и возвращает его снимок.
// Снимок делается до вызова обработчика, чтобы отчёты не зависели друг
// от друга.
func (d *Dispatcher) touch(ev domain.InboundEvent, traceID string) domain.AuxState {
	chat := d.chatData[ev.ChatID]
	if chat == nil {
		chat = make(map[string]any)
		d.chatData[ev.ChatID] = chat
	}
	bump(chat, "updates")
	chat["last_kind"] = string(ev.Kind)
	chat["last_trace_id"] = traceID
	if ev.Command != "" {
		chat["last_command"] = "/" + ev.Command
	}

	var user map[string]any
	if ev.UserID != 0 {
		user = d.userData[ev.UserID]
		if user == nil {
			user = make(map[string]any)
			d.userData[ev.UserID] = user
		}
		bump(user, "updates")
		user["last_chat_id"] = ev.ChatID
	}

	return domain.AuxState{Chat: snapshot(chat), User: snapshot(user)}
}

func bump(data map[string]any, key string) {
	count, _ := data[key].(int)
	data[key] = count + 1
}

func snapshot(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	copied := make(map[string]any, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return copied
}

// Classify преобразует апдейт Bot API в доменное событие.
// События, для которых нет обработчиков (стикеры, правки, обычный текст),
// отбрасываются.
func Classify(upd tgbotapi.Update) (domain.InboundEvent, bool) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return domain.InboundEvent{}, false
	}

	ev := domain.InboundEvent{
		UpdateID: upd.UpdateID,
		ChatID:   msg.Chat.ID,
		Text:     msg.Text,
	}
	if msg.From != nil {
		ev.UserID = msg.From.ID
	}

	switch {
	case msg.IsCommand():
		ev.Kind = domain.EventCommand
		ev.Command = msg.Command()
	case len(msg.Photo) > 0:
		ev.Kind = domain.EventPhoto
		for _, size := range msg.Photo {
			ev.Photos = append(ev.Photos, domain.MediaReference{FileID: size.FileID})
		}
	case msg.Video != nil:
		ev.Kind = domain.EventVideo
		ev.Video = &domain.MediaReference{FileID: msg.Video.FileID}
	default:
		return domain.InboundEvent{}, false
	}

	return ev, true
}

package bot

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"tg-media-bot/internal/domain"
)

const usageTemplate = "Use /bad_command to cause an error.\nYour chat id is <code>%d</code>."

// Метод Bot API, которого не существует; нужен /bad_command для проверки
// пути отчётов об ошибках.
const missingMethod = "wrongMethodName"

// HandlerFunc обрабатывает одно входящее событие.
type HandlerFunc func(ctx context.Context, ev domain.InboundEvent) error

// Handler содержит обработчики команд и медиасообщений.
// Каждый обработчик — чистая последовательность: проверка доступа,
// действие, ответ.
type Handler struct {
	guard      domain.AccessGuard
	messenger  domain.Messenger
	downloader domain.MediaDownloader
	log        zerolog.Logger
	commands   map[string]HandlerFunc
}

// NewHandler создаёт обработчик.
func NewHandler(guard domain.AccessGuard, messenger domain.Messenger, downloader domain.MediaDownloader, log zerolog.Logger) *Handler {
	h := &Handler{
		guard:      guard,
		messenger:  messenger,
		downloader: downloader,
		log:        log,
	}
	h.commands = map[string]HandlerFunc{
		"start":       h.handleStart,
		"bad_command": h.handleBadCommand,
	}
	return h
}

// Route подбирает обработчик по дискриминанту события.
// nil означает, что событие никому не адресовано и игнорируется.
func (h *Handler) Route(ev domain.InboundEvent) HandlerFunc {
	switch ev.Kind {
	case domain.EventCommand:
		return h.commands[ev.Command]
	case domain.EventPhoto:
		return h.handlePhoto
	case domain.EventVideo:
		return h.handleVideo
	}
	return nil
}

func (h *Handler) handleStart(ctx context.Context, ev domain.InboundEvent) error {
	if err := h.guard.Check(ev.ChatID); err != nil {
		return err
	}
	return h.messenger.SendHTML(ctx, ev.ChatID, fmt.Sprintf(usageTemplate, ev.ChatID))
}

// handleBadCommand дергает несуществующий метод Bot API и всегда
// завершается domain.ErrIntentionalFault.
func (h *Handler) handleBadCommand(ctx context.Context, ev domain.InboundEvent) error {
	if err := h.guard.Check(ev.ChatID); err != nil {
		return err
	}
	if err := h.messenger.InvokeMethod(ctx, missingMethod); err != nil {
		return errors.Wrapf(domain.ErrIntentionalFault, "%s: %v", missingMethod, err)
	}
	return errors.Wrapf(domain.ErrIntentionalFault, "%s unexpectedly succeeded", missingMethod)
}

func (h *Handler) handlePhoto(ctx context.Context, ev domain.InboundEvent) error {
	if err := h.guard.Check(ev.ChatID); err != nil {
		return err
	}
	ref, ok := ev.LargestPhoto()
	if !ok {
		return errors.New("photo event without size variants")
	}
	local, err := h.downloader.Download(ctx, ref)
	if err != nil {
		return err
	}
	h.log.Debug().Str("file", local).Msg("фото скачано")
	return h.messenger.SendHTML(ctx, ev.ChatID, "Downloaded image")
}

func (h *Handler) handleVideo(ctx context.Context, ev domain.InboundEvent) error {
	if err := h.guard.Check(ev.ChatID); err != nil {
		return err
	}
	if ev.Video == nil {
		return errors.New("video event without payload")
	}
	local, err := h.downloader.Download(ctx, *ev.Video)
	if err != nil {
		return err
	}
	h.log.Debug().Str("file", local).Msg("видео скачано")
	if err := h.messenger.SendHTML(ctx, ev.ChatID, fmt.Sprintf(usageTemplate, ev.ChatID)); err != nil {
		return err
	}
	return h.messenger.SendHTML(ctx, ev.ChatID, "Downloaded video")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"

	"tg-media-bot/internal/adapters/bot"
	"tg-media-bot/internal/adapters/telegram"
	"tg-media-bot/internal/domain"
	"tg-media-bot/internal/infra/config"
	infrahttp "tg-media-bot/internal/infra/http"
	"tg-media-bot/internal/infra/log"
	"tg-media-bot/internal/infra/metrics"
	"tg-media-bot/internal/usecase/access"
	"tg-media-bot/internal/usecase/download"
	"tg-media-bot/internal/usecase/report"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	if err := os.MkdirAll(cfg.Files.Dir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Files.Dir).Msg("не удалось создать каталог файлов")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать бота")
	}

	client := telegram.NewClient(botAPI, logger)
	guard := access.NewGuard(cfg.DeveloperChatID)
	downloader := download.NewService(client, cfg.Files.Dir, logger)
	reporter := report.NewReporter(client, cfg.DeveloperChatID, logger)
	handler := bot.NewHandler(guard, client, downloader, logger)
	dispatcher := bot.NewDispatcher(botAPI, handler, reporter, cfg.Telegram.PollTimeout, logger)

	srv := infrahttp.NewServer(logger)
	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("HTTP сервер остановлен")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
		<-stop
		logger.Info().Msg("остановка бота")
		cancel()
	}()

	logger.Info().
		Str("bot", botAPI.Self.UserName).
		Int64("developer_chat_id", cfg.DeveloperChatID).
		Msg("бот запущен")

	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("диспетчер остановлен с ошибкой")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

var _ domain.Messenger = (*telegram.Client)(nil)
var _ domain.FileGateway = (*telegram.Client)(nil)
var _ domain.AccessGuard = (*access.Guard)(nil)
var _ domain.MediaDownloader = (*download.Service)(nil)
var _ domain.FailureReporter = (*report.Reporter)(nil)

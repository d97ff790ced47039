package telegram

import (
	"context"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"tg-media-bot/internal/domain"
	"tg-media-bot/internal/infra/metrics"
)

// Client оборачивает Bot API: отправка сообщений и работа с файлами.
type Client struct {
	bot  *tgbotapi.BotAPI
	http *http.Client
	log  zerolog.Logger
}

// NewClient создаёт клиента.
func NewClient(bot *tgbotapi.BotAPI, log zerolog.Logger) *Client {
	return &Client{bot: bot, http: http.DefaultClient, log: log}
}

// SendHTML отправляет HTML-сообщение, при необходимости разрезая его
// по лимиту Telegram.
func (c *Client) SendHTML(ctx context.Context, chatID int64, text string) error {
	for _, part := range SplitMessage(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		start := time.Now()
		_, err := c.bot.Send(msg)
		metrics.ObserveNetworkRequest("telegram_bot", "send_message", strconv.FormatInt(chatID, 10), start, err)
		if err != nil {
			return errors.Wrap(err, "send message")
		}
	}
	return nil
}

// InvokeMethod вызывает произвольный метод Bot API без параметров.
func (c *Client) InvokeMethod(ctx context.Context, method string) error {
	start := time.Now()
	_, err := c.bot.MakeRequest(method, nil)
	metrics.ObserveNetworkRequest("telegram_bot", method, "", start, err)
	if err != nil {
		return errors.Wrapf(err, "call %s", method)
	}
	return nil
}

// Resolve получает удалённый путь и прямую ссылку на файл.
func (c *Client) Resolve(ctx context.Context, ref domain.MediaReference) (domain.RemoteFile, error) {
	start := time.Now()
	file, err := c.bot.GetFile(tgbotapi.FileConfig{FileID: ref.FileID})
	metrics.ObserveNetworkRequest("telegram_bot", "get_file", ref.FileID, start, err)
	if err != nil {
		return domain.RemoteFile{}, errors.Wrap(err, "get file")
	}
	ref.RemotePath = file.FilePath
	return domain.RemoteFile{
		Ref:  ref,
		URL:  file.Link(c.bot.Token),
		Size: int64(file.FileSize),
	}, nil
}

// Fetch скачивает содержимое файла по прямой ссылке.
func (c *Client) Fetch(ctx context.Context, file domain.RemoteFile) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveNetworkRequest("telegram_file", "download", path.Base(file.Ref.RemotePath), start, err)
	if err != nil {
		return nil, errors.Wrap(err, "download file")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.Errorf("download file: unexpected status %s", resp.Status)
	}
	c.log.Debug().Str("path", file.Ref.RemotePath).Int64("size", file.Size).Msg("скачивание файла")
	return resp.Body, nil
}

package domain

import (
	"context"
	"io"
)

// Messenger отправляет сообщения через Bot API.
type Messenger interface {
	SendHTML(ctx context.Context, chatID int64, text string) error
	InvokeMethod(ctx context.Context, method string) error
}

// FileGateway резолвит ссылки на файлы и отдаёт их содержимое.
type FileGateway interface {
	Resolve(ctx context.Context, ref MediaReference) (RemoteFile, error)
	Fetch(ctx context.Context, file RemoteFile) (io.ReadCloser, error)
}

// MediaDownloader сохраняет файл по ссылке и возвращает локальный путь.
type MediaDownloader interface {
	Download(ctx context.Context, ref MediaReference) (string, error)
}

// AccessGuard проверяет, что чат имеет право пользоваться ботом.
type AccessGuard interface {
	Check(chatID int64) error
}

// FailureReporter отправляет разработчику отчёт о необработанной ошибке.
type FailureReporter interface {
	Report(ctx context.Context, ev InboundEvent, aux AuxState, failure error) error
}

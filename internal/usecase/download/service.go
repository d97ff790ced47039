package download

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"tg-media-bot/internal/domain"
	"tg-media-bot/internal/infra/metrics"
)

// Service скачивает медиафайлы в локальный каталог.
type Service struct {
	files domain.FileGateway
	dir   string
	log   zerolog.Logger
}

// NewService создаёт загрузчик.
func NewService(files domain.FileGateway, dir string, log zerolog.Logger) *Service {
	return &Service{files: files, dir: dir, log: log}
}

// Download резолвит ссылку, сохраняет файл и возвращает локальный путь.
// Имя файла — последний сегмент удалённого пути; существующий файл с тем же
// именем перезаписывается. Ошибки транспорта не ретраятся.
func (s *Service) Download(ctx context.Context, ref domain.MediaReference) (string, error) {
	start := time.Now()

	file, err := s.files.Resolve(ctx, ref)
	if err != nil {
		return "", errors.Wrap(err, "resolve file")
	}

	name := path.Base(file.Ref.RemotePath)
	if name == "" || name == "." || name == "/" {
		return "", errors.Errorf("remote path %q has no filename", file.Ref.RemotePath)
	}

	body, err := s.files.Fetch(ctx, file)
	if err != nil {
		return "", errors.Wrap(err, "fetch file")
	}
	defer body.Close()

	dst := filepath.Join(s.dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "create local file")
	}

	written, err := io.Copy(out, body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", errors.Wrap(err, "write local file")
	}

	metrics.ObserveDownload(written, time.Since(start))
	s.log.Info().Str("file", dst).Int64("bytes", written).Msg("медиафайл сохранён")
	return dst, nil
}

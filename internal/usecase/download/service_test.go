package download

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"tg-media-bot/internal/domain"
)

type fakeGateway struct {
	remotePath string
	body       string
	resolveErr error
	fetchErr   error
	fetched    []domain.RemoteFile
}

func (g *fakeGateway) Resolve(ctx context.Context, ref domain.MediaReference) (domain.RemoteFile, error) {
	if g.resolveErr != nil {
		return domain.RemoteFile{}, g.resolveErr
	}
	ref.RemotePath = g.remotePath
	return domain.RemoteFile{Ref: ref, URL: "https://files.example/" + g.remotePath, Size: int64(len(g.body))}, nil
}

func (g *fakeGateway) Fetch(ctx context.Context, file domain.RemoteFile) (io.ReadCloser, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	g.fetched = append(g.fetched, file)
	return io.NopCloser(strings.NewReader(g.body)), nil
}

func TestDownloadUsesFinalPathSegment(t *testing.T) {
	dir := t.TempDir()
	gateway := &fakeGateway{remotePath: "abc/def/image123.jpg", body: "jpeg-bytes"}
	svc := NewService(gateway, dir, zerolog.Nop())

	dst, err := svc.Download(context.Background(), domain.MediaReference{FileID: "f1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if dst != filepath.Join(dir, "image123.jpg") {
		t.Fatalf("unexpected destination: %s", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected file content: %q", data)
	}
}

func TestDownloadOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "image123.jpg")
	if err := os.WriteFile(dst, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	gateway := &fakeGateway{remotePath: "photos/image123.jpg", body: "fresh"}
	svc := NewService(gateway, dir, zerolog.Nop())

	if _, err := svc.Download(context.Background(), domain.MediaReference{FileID: "f1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "fresh" {
		t.Fatalf("expected file to be overwritten, got %q", data)
	}
}

func TestDownloadResolveErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	gateway := &fakeGateway{resolveErr: io.ErrUnexpectedEOF}
	svc := NewService(gateway, dir, zerolog.Nop())

	if _, err := svc.Download(context.Background(), domain.MediaReference{FileID: "f1"}); err == nil {
		t.Fatal("expected resolve error to propagate")
	}
	if len(gateway.fetched) != 0 {
		t.Fatalf("expected no fetch after resolve failure, got %d", len(gateway.fetched))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files written, got %d", len(entries))
	}
}

func TestDownloadFetchErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	gateway := &fakeGateway{remotePath: "photos/a.jpg", fetchErr: io.ErrUnexpectedEOF}
	svc := NewService(gateway, dir, zerolog.Nop())

	if _, err := svc.Download(context.Background(), domain.MediaReference{FileID: "f1"}); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestDownloadRejectsPathWithoutFilename(t *testing.T) {
	dir := t.TempDir()
	gateway := &fakeGateway{remotePath: "", body: "x"}
	svc := NewService(gateway, dir, zerolog.Nop())

	if _, err := svc.Download(context.Background(), domain.MediaReference{FileID: "f1"}); err == nil {
		t.Fatal("expected error for remote path without filename")
	}
	if len(gateway.fetched) != 0 {
		t.Fatalf("expected no fetch for bad path, got %d", len(gateway.fetched))
	}
}

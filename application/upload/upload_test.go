package upload_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muhammadheryan/customer-hub/application/upload"
	"github.com/muhammadheryan/customer-hub/cmd/config"
	"github.com/muhammadheryan/customer-hub/constant"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(content []byte) multipart.File {
	return memFile{bytes.NewReader(content)}
}

func newTestApp(t *testing.T) (upload.UploadApp, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Upload: config.UploadConfig{
			Dir:        dir,
			PublicPath: "uploads",
			MaxSize:    1024,
		},
	}
	app, err := upload.NewUploadApp(cfg)
	if err != nil {
		t.Fatalf("NewUploadApp() error = %v", err)
	}
	return app, dir
}

func assertCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func TestUploadApp_Save(t *testing.T) {
	content := []byte("fake image bytes")

	t.Run("success: stored under a random name, original name sanitized", func(t *testing.T) {
		app, dir := newTestApp(t)
		header := &multipart.FileHeader{
			Filename: `<img src=x onerror=alert(1)>photo.PNG`,
			Size:     int64(len(content)),
		}

		got, err := app.Save(context.Background(), newMemFile(content), header)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		if !strings.HasPrefix(got.FileName, "/uploads/") || !strings.HasSuffix(got.FileName, ".png") {
			t.Fatalf("FileName = %s, want /uploads/<uuid>.png", got.FileName)
		}
		if strings.Contains(got.OriginalName, "<") || strings.Contains(got.OriginalName, "onerror") {
			t.Fatalf("OriginalName = %q, markup not stripped", got.OriginalName)
		}

		stored := filepath.Join(dir, strings.TrimPrefix(got.FileName, "/uploads/"))
		data, err := os.ReadFile(stored)
		if err != nil {
			t.Fatalf("read stored file: %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Fatalf("stored content mismatch")
		}
	})

	t.Run("error: no file in the request", func(t *testing.T) {
		app, _ := newTestApp(t)
		_, err := app.Save(context.Background(), nil, nil)
		assertCode(t, err, constant.ErrNoFileUploaded)
	})

	t.Run("error: file above the size cap", func(t *testing.T) {
		app, _ := newTestApp(t)
		header := &multipart.FileHeader{Filename: "big.png", Size: 2048}
		_, err := app.Save(context.Background(), newMemFile(content), header)
		assertCode(t, err, constant.ErrInvalidRequest)
	})

	t.Run("error: extension outside the image allowlist", func(t *testing.T) {
		app, _ := newTestApp(t)
		header := &multipart.FileHeader{Filename: "payload.exe", Size: int64(len(content))}
		_, err := app.Save(context.Background(), newMemFile(content), header)
		assertCode(t, err, constant.ErrInvalidRequest)
	})

	t.Run("error: no extension at all", func(t *testing.T) {
		app, _ := newTestApp(t)
		header := &multipart.FileHeader{Filename: "noext", Size: int64(len(content))}
		_, err := app.Save(context.Background(), newMemFile(content), header)
		assertCode(t, err, constant.ErrInvalidRequest)
	})
}

package upload

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadheryan/customer-hub/cmd/config"
	"github.com/muhammadheryan/customer-hub/constant"
	"github.com/muhammadheryan/customer-hub/model"
	cerr "github.com/muhammadheryan/customer-hub/utils/errors"
	"github.com/muhammadheryan/customer-hub/utils/logger"
	"github.com/muhammadheryan/customer-hub/utils/sanitize"
	"go.uber.org/zap"
)

type UploadApp interface {
	Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResponse, error)
}

type uploadAppImpl struct {
	config *config.Config
}

// allowedExtensions mirrors the image allowlist of the upload endpoint
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

func NewUploadApp(config *config.Config) (UploadApp, error) {
	if err := os.MkdirAll(config.Upload.Dir, 0o755); err != nil {
		return nil, err
	}
	return &uploadAppImpl{config: config}, nil
}

// Save stores the uploaded file under a random name, keeping only the
// extension of the original. The original name is echoed back stripped of
// any HTML markup.
func (s *uploadAppImpl) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResponse, error) {
	if file == nil || header == nil {
		return nil, cerr.SetCustomError(constant.ErrNoFileUploaded)
	}

	if header.Size > s.config.Upload.MaxSize {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if len(ext) > 10 {
		ext = ext[:10]
	}
	if !allowedExtensions[ext] {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	storedName := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.config.Upload.Dir, storedName))
	if err != nil {
		logger.Error("[Save] err create file", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.config.Upload.MaxSize)); err != nil {
		logger.Error("[Save] err write file", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	return &model.UploadResponse{
		FileName:     "/" + s.config.Upload.PublicPath + "/" + storedName,
		OriginalName: sanitize.Clean(header.Filename),
	}, nil
}

package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/chessmate-central/storage"
)

const (
	MaxUploadSize = 10 << 20
	uploadPrefix  = "uploads/"
)

type UploadService interface {
	// Upload stores the file under a fresh key and returns its public URL.
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
}

type uploadService struct {
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewUploadService(uploader storage.FileUploader, logger *slog.Logger) UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &uploadService{uploader: uploader, logger: logger}
}

func (s *uploadService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if r == nil || size == 0 {
		return "", ErrFileRequired
	}
	if size > MaxUploadSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		} else {
			contentType = "application/octet-stream"
		}
	}

	key := uploadPrefix + uuid.NewString() + ext
	res, err := s.uploader.Upload(ctx, key, contentType, io.LimitReader(r, MaxUploadSize))
	if err != nil {
		return "", storeError("failed to store upload", err)
	}
	s.logger.InfoContext(ctx, "File uploaded", slog.String("key", key), slog.Int64("size", size))
	return res.Location, nil
}

// Package upload stores back-office image uploads in object storage.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Darkingtail/mall4r/internal/domain/shared"
	"github.com/Darkingtail/mall4r/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorage is the blob store uploaded files are written to
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Recorder counts upload outcomes
type Recorder interface {
	Upload(ok bool)
}

// sniffLen is the number of bytes http.DetectContentType looks at
const sniffLen = 512

// Service validates and stores uploaded images
type Service struct {
	storage  ObjectStorage
	cfg      config.UploadConfig
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithRecorder counts every upload attempt
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock replaces the clock used to build object keys
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an upload service
func NewService(storage ObjectStorage, cfg config.UploadConfig, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// File is one uploaded file
type File struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Upload stores an image and returns its relative object key,
// yyyy/MM/dd/<uuid><ext>. Clients prefix the key with the image base URL.
func (s *Service) Upload(ctx context.Context, f File) (string, error) {
	key, err := s.upload(ctx, f)
	if s.recorder != nil {
		s.recorder.Upload(err == nil)
	}
	return key, err
}

func (s *Service) upload(ctx context.Context, f File) (string, error) {
	ext := strings.ToLower(path.Ext(f.Filename))
	if !s.allowed(ext) {
		return "", shared.InvalidInput(fmt.Sprintf("File type %q is not allowed", ext))
	}
	if f.Size <= 0 {
		return "", shared.InvalidInput("File is empty")
	}
	if f.Size > s.cfg.MaxFileSize {
		return "", shared.InvalidInput(fmt.Sprintf("File exceeds the %d byte limit", s.cfg.MaxFileSize))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", shared.InvalidInput("Only image files can be uploaded")
	}

	key := s.now().Format("2006/01/02") + "/" + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	body := io.MultiReader(bytes.NewReader(head[:n]), f.Body)
	if err := s.storage.Put(ctx, key, body, f.Size, contentType); err != nil {
		s.logger.Error("Failed to store upload", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("File uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", f.Size))
	return key, nil
}

// Remove deletes a stored object. Missing objects are not an error.
func (s *Service) Remove(ctx context.Context, key string) error {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return shared.InvalidInput("Object key is required")
	}
	ok, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check object: %w", err)
	}
	if !ok {
		return nil
	}
	return s.storage.Delete(ctx, key)
}

// URL joins a relative key with the configured image base URL
func (s *Service) URL(key string) string {
	if s.cfg.ImageBaseURL == "" {
		return key
	}
	return strings.TrimSuffix(s.cfg.ImageBaseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}

func (s *Service) allowed(ext string) bool {
	if ext == "" {
		return false
	}
	for _, a := range s.cfg.AllowedExtensions {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

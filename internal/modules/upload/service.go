package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillbridge/internal/access"
	"skillbridge/internal/domain"
	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/pkg/logger"
	"skillbridge/internal/pkg/storage"
	"skillbridge/internal/repository"
)

const (
	MaxImageSize = 5 * 1024 * 1024 // 5 MB

	bucketAvatars  = "avatars"
	bucketServices = "services"
)

// allowedMimeTypes maps accepted image types to a file extension.
var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type AvatarStore interface {
	SetAvatarURL(ctx context.Context, id int64, url string) error
}

// ServiceImages is implemented by the catalog service.
type ServiceImages interface {
	EnsureOwner(ctx context.Context, a access.ActorContext, id int64) (*domain.WorkerService, error)
	SetImageURL(ctx context.Context, a access.ActorContext, id int64, url string) (*domain.WorkerService, error)
}

// Service pushes images to object storage and records the public URL.
type Service struct {
	uploader storage.Uploader
	profiles AvatarStore
	services ServiceImages
}

func NewService(uploader storage.Uploader, profiles AvatarStore, services ServiceImages) *Service {
	return &Service{uploader: uploader, profiles: profiles, services: services}
}

// UploadAvatar sets the caller's avatar. Any signed-in user may upload.
func (s *Service) UploadAvatar(ctx context.Context, a access.ActorContext, file io.Reader, size int64) (string, error) {
	if err := access.RequireIdentity(a); err != nil {
		return "", err
	}

	url, err := s.put(ctx, bucketAvatars, fmt.Sprintf("user-%d", a.ID), file, size)
	if err != nil {
		return "", err
	}

	if err := s.profiles.SetAvatarURL(ctx, a.ID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", access.ErrUnauthenticated
		}
		return "", apperr.Store(err)
	}
	return url, nil
}

// UploadServiceImage replaces the image of a service owned by the caller.
// Ownership is checked before anything is uploaded.
func (s *Service) UploadServiceImage(ctx context.Context, a access.ActorContext, serviceID int64, file io.Reader, size int64) (*domain.WorkerService, error) {
	if _, err := s.services.EnsureOwner(ctx, a, serviceID); err != nil {
		return nil, err
	}

	url, err := s.put(ctx, bucketServices, fmt.Sprintf("service-%d", serviceID), file, size)
	if err != nil {
		return nil, err
	}
	return s.services.SetImageURL(ctx, a, serviceID, url)
}

func (s *Service) put(ctx context.Context, bucket, prefix string, file io.Reader, size int64) (string, error) {
	if size == 0 {
		return "", ErrEmptyFile
	}
	if size > MaxImageSize {
		return "", ErrFileTooLarge
	}

	// Detect MIME type from first 512 bytes
	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", apperr.Store(err)
	}
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return "", ErrInvalidMimeType
	}

	objectPath := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext)
	url, err := s.uploader.Upload(ctx, bucket, objectPath, io.MultiReader(bytes.NewReader(buf[:n]), file))
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			return "", ErrStorageDisabled
		}
		logger.Error("upload failed", zap.String("bucket", bucket), zap.Error(err))
		return "", apperr.Store(err)
	}

	logger.Info("file uploaded", zap.String("bucket", bucket), zap.String("path", objectPath))
	return url, nil
}

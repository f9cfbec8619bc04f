package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"threadnest/internal/config"
	"threadnest/internal/domain"
	"threadnest/internal/repository"
)

type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error)
	SetAvatar(ctx context.Context, userID uuid.UUID, m *domain.Media) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	mediaRepo   repository.MediaRepository
	userRepo    repository.UserRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(mediaRepo repository.MediaRepository, userRepo repository.UserRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		mediaRepo:   mediaRepo,
		userRepo:    userRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error) {
	mediaID := uuid.New()
	storagePath := fmt.Sprintf("media/%s/%s", time.Now().Format("2006/01"), mediaID.String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	media := &domain.Media{
		ID:          mediaID,
		UploadedBy:  userID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	media.URL = s.getPublicURL(storagePath)
	return media, nil
}

func (s *service) SetAvatar(ctx context.Context, userID uuid.UUID, m *domain.Media) error {
	return s.userRepo.UpdateAvatar(ctx, userID, m.URL)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil || media == nil {
		return media, err
	}
	media.URL = s.getPublicURL(media.StoragePath)
	return media, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return nil
	}
	if media.UploadedBy != userID {
		return domain.ErrNotAuthor
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, media.StoragePath, minio.RemoveObjectOptions{})
	return nil
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}

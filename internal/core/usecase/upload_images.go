package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UploadImagesUseCase проверяет файлы и складывает их в объектное хранилище.
type UploadImagesUseCase struct {
	images port.ImageStoragePort // nil - загрузка не настроена
	now    func() time.Time
}

func NewUploadImagesUseCase(images port.ImageStoragePort) *UploadImagesUseCase {
	return &UploadImagesUseCase{images: images, now: time.Now}
}

func (uc *UploadImagesUseCase) Execute(ctx context.Context, ownerID uuid.UUID, files []domain.ImageUpload) ([]domain.PropertyImage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "UploadImages",
		"owner_id":   ownerID.String(),
		"file_count": len(files),
	})

	if uc.images == nil {
		return nil, domain.ErrUploadsDisabled
	}
	if len(files) == 0 {
		return nil, domain.NewValidationError("at least one image is required", "images")
	}
	if len(files) > domain.MaxImagesPerUpload {
		return nil, domain.NewValidationError(fmt.Sprintf("at most %d images per request", domain.MaxImagesPerUpload), "images")
	}

	// сначала проверяем все файлы, чтобы не оставлять в бакете половину пачки
	contentTypes := make([]string, len(files))
	for i, f := range files {
		ct, err := domain.ValidateImage(f)
		if err != nil {
			ucLogger.Warn("Image rejected", port.Fields{"filename": f.Filename, "reason": err.Error()})
			return nil, err
		}
		contentTypes[i] = ct
	}

	now := uc.now()
	uploaded := make([]domain.PropertyImage, 0, len(files))
	for i, f := range files {
		key := domain.ImageObjectKey(ownerID, contentTypes[i], now)
		url, err := uc.images.Upload(ctx, key, contentTypes[i], f.Data)
		if err != nil {
			ucLogger.Error("Image storage failed", err, port.Fields{"filename": f.Filename})
			return nil, fmt.Errorf("internal server error: %w", err)
		}
		uploaded = append(uploaded, domain.PropertyImage{URL: url, Caption: domain.ImageCaption(f.Filename)})
	}

	ucLogger.Info("Use case finished: images uploaded", nil)
	return uploaded, nil
}

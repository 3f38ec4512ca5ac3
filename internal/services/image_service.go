package services

import (
	"context"
	"fmt"
	"io"

	"foodshare/internal/models"
	"foodshare/internal/utils"

	"github.com/google/uuid"
)

// ImageService processes and stores donation images
type ImageService struct {
	storage   StorageClient
	processor *utils.ImageProcessor
	logger    utils.Logger
}

// NewImageService creates an ImageService; storage may be nil when object storage is disabled
func NewImageService(storage StorageClient, maxEdge uint) *ImageService {
	return &ImageService{
		storage:   storage,
		processor: utils.NewImageProcessor(maxEdge, 85),
		logger:    utils.GetLogger(),
	}
}

// Enabled reports whether uploads can be stored
func (s *ImageService) Enabled() bool {
	return s.storage != nil
}

// UploadDonationImage downscales r to JPEG and stores it under donations/<uuid>.jpg
func (s *ImageService) UploadDonationImage(ctx context.Context, userID uint, r io.Reader) (*models.ImageUploadResponse, error) {
	if s.storage == nil {
		return nil, utils.ErrStorageUnavailable
	}

	result, err := s.processor.Process(r)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("donations/%s.jpg", uuid.NewString())
	url, err := s.storage.PutObject(ctx, key, "image/jpeg", result.Data, result.Size)
	if err != nil {
		return nil, utils.ErrStorageUnavailable
	}

	s.logger.Info("donation image stored",
		"userID", userID,
		"object", key,
		"width", result.Width,
		"height", result.Height,
		"resized", result.Resized,
		"bytes", result.Size)

	return &models.ImageUploadResponse{
		ImageURL:  url,
		ObjectKey: key,
		Width:     result.Width,
		Height:    result.Height,
	}, nil
}

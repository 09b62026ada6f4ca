package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pds/internal/logger"
	"github.com/MKhiriev/go-pds/internal/metrics"
	"github.com/MKhiriev/go-pds/internal/store"
	"github.com/MKhiriev/go-pds/internal/utils"
	"github.com/MKhiriev/go-pds/models"
)

const (
	// MaxBlobSize is the largest accepted upload.
	MaxBlobSize = 5 << 20

	defaultMimeType = "application/octet-stream"
)

type blobService struct {
	blocks store.BlockStore
	logger *logger.Logger
}

func NewBlobService(blocks store.BlockStore, logger *logger.Logger) BlobService {
	return &blobService{blocks: blocks, logger: logger}
}

// UploadBlob stores data under its content address. Uploading the same
// bytes twice yields the same ref.
func (s *blobService) UploadBlob(ctx context.Context, mimeType string, data []byte) (models.BlobRef, error) {
	if len(data) == 0 {
		return models.BlobRef{}, fmt.Errorf("%w: empty blob", ErrInvalidDataProvided)
	}
	if len(data) > MaxBlobSize {
		return models.BlobRef{}, fmt.Errorf("%w: %d bytes, limit is %d", ErrBlobTooLarge, len(data), MaxBlobSize)
	}
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	ref := utils.ContentRef(data)
	if err := s.blocks.PutBlock(ctx, ref, data); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*blobService.UploadBlob").Msg("error storing blob")
		return models.BlobRef{}, fmt.Errorf("error storing blob: %w", err)
	}

	metrics.BlobBytesStoredTotal.Add(float64(len(data)))

	return models.BlobRef{Ref: ref, MimeType: mimeType, Size: len(data)}, nil
}

func (s *blobService) GetBlob(ctx context.Context, ref string) ([]byte, error) {
	data, err := s.blocks.GetBlock(ctx, ref)
	if errors.Is(err, store.ErrBlockNotFound) || errors.Is(err, store.ErrInvalidBlockRef) {
		return nil, fmt.Errorf("%w: %q", ErrBlobNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	return data, nil
}

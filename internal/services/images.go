package services

import (
	"errors"
	"fmt"
	"io"

	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
)

// ImageService stores and deletes uploaded pizza images
type ImageService interface {
	// Upload saves content under a unique name keeping the extension of filename
	Upload(filename string, content io.Reader) (models.UploadedImage, error)
	// Delete removes the image a stored reference points to
	Delete(ref string) error
}

type imageService struct {
	store *images.Store
}

// NewImageService creates a new instance of ImageService over store
func NewImageService(store *images.Store) ImageService {
	return &imageService{store: store}
}

func (s *imageService) Upload(filename string, content io.Reader) (models.UploadedImage, error) {
	stored, err := s.store.Save(filename, content)
	if err != nil {
		return models.UploadedImage{}, err
	}
	return models.UploadedImage{Filename: stored.Filename, Path: stored.Path}, nil
}

func (s *imageService) Delete(ref string) error {
	err := s.store.Remove(ref)
	switch {
	case errors.Is(err, images.ErrNotFound):
		return fmt.Errorf("image %s: %w", ref, ErrNotFound)
	case errors.Is(err, images.ErrInvalidName):
		return fmt.Errorf("image %q: %w", ref, ErrInvalid)
	default:
		return err
	}
}

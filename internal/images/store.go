package images

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// ErrNotFound is returned when a referenced image does not exist
var ErrNotFound = errors.New("image not found")

// ErrInvalidName is returned for references that would escape the image directory
var ErrInvalidName = errors.New("invalid image name")

// Stored describes a saved upload
type Stored struct {
	// Filename is the reference kept on the pizza record
	Filename string `json:"filename"`
	// Path is the public URL path the image is served from
	Path string `json:"path"`
}

// Store keeps uploaded images in a directory on disk
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a Store rooted there
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory images are stored in
func (s *Store) Dir() string {
	return s.dir
}

// Save writes content under a fresh unique name that keeps the original extension
func (s *Store) Save(originalName string, content io.Reader) (Stored, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Stored{}, fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return Stored{}, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Stored{}, fmt.Errorf("closing %s: %w", name, err)
	}

	log.WithFields(logrus.Fields{
		"image":    name,
		"original": originalName,
	}).Info("Stored uploaded image")

	return Stored{Filename: StoragePrefix + name, Path: PublicPrefix + name}, nil
}

// Remove deletes the image a reference points to
func (s *Store) Remove(ref string) error {
	name := Name(ref)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return ErrInvalidName
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	log.WithField("image", name).Info("Removed image")
	return nil
}

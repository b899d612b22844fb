package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
)

const (
	uploadImagePath = "/pizza/upload_image"
	deleteImagePath = "/pizza/delete_image"
)

// ImageClient uploads and removes pizza images
type ImageClient struct {
	client *Client
}

// NewImageClient creates an ImageClient on top of c
func NewImageClient(c *Client) *ImageClient {
	return &ImageClient{client: c}
}

// Upload sends content as a multipart form file and returns the stored reference
func (i *ImageClient) Upload(ctx context.Context, filename string, content io.Reader) (models.UploadedImage, error) {
	var out models.UploadedImage

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return out, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return out, fmt.Errorf("reading upload content: %w", err)
	}
	if err := form.Close(); err != nil {
		return out, fmt.Errorf("closing upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.client.baseURL+uploadImagePath, &buf)
	if err != nil {
		return out, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	err = i.client.send(req, uploadImagePath, &out)
	return out, err
}

// Delete removes a previously uploaded image by its stored reference
func (i *ImageClient) Delete(ctx context.Context, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return fmt.Errorf("deleting image: empty reference")
	}
	segments := strings.Split(strings.TrimPrefix(ref, "/"), "/")
	for n, s := range segments {
		segments[n] = url.PathEscape(s)
	}
	path := deleteImagePath + "/" + strings.Join(segments, "/")
	return i.client.Do(ctx, http.MethodDelete, path, nil, nil)
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/franciscosanchezn/gin-pizza-console/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ImageController handles pizza image uploads and deletions
type ImageController interface {
	// Upload stores the multipart file field "file"
	Upload(c *gin.Context)
	// Delete removes an image by its stored reference
	Delete(c *gin.Context)
}

type imageController struct {
	service services.ImageService
}

// NewImageController creates a new instance of ImageController
func NewImageController(service services.ImageService) ImageController {
	return &imageController{service: service}
}

// Upload godoc
// @Summary Upload a pizza image
// @Description Stores the file under a unique name. filename is the reference to keep on the pizza, path the public URL path.
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} models.UploadedImage
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /pizza/upload_image [post]
func (c *imageController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "A file field is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrImageUploadFailed, "Uploaded file cannot be read"))
		return
	}
	defer file.Close()

	uploaded, err := c.service.Upload(header.Filename, file)
	if err != nil {
		log.WithError(err).WithField("original", header.Filename).Error("Error uploading file")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrImageUploadFailed, "Failed to upload file"))
		return
	}
	ctx.JSON(http.StatusOK, uploaded)
}

// Delete godoc
// @Summary Delete a pizza image
// @Description Accepts dist/images/f, images/f or a bare file name
// @Tags images
// @Produce json
// @Param ref path string true "Stored image reference"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /pizza/delete_image/{ref} [delete]
func (c *imageController) Delete(ctx *gin.Context) {
	ref := strings.TrimPrefix(ctx.Param("ref"), "/")
	if err := c.service.Delete(ref); err != nil {
		respondError(ctx, err, models.ErrImageNotFound)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

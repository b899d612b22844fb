package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/franciscosanchezn/gin-pizza-console/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps a service error onto a status and an APIError body.
// notFoundCode is used when the addressed entity itself does not exist.
func respondError(ctx *gin.Context, err error, notFoundCode string) {
	var refErr *services.ReferenceError
	switch {
	case errors.As(err, &refErr):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrReferenceNotFound, refErr.Error(), map[string]interface{}{
			"kind": refErr.Kind,
			"ids":  refErr.IDs,
		}))
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(notFoundCode, err.Error()))
	case errors.Is(err, services.ErrInUse):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrInUse, err.Error()))
	case errors.Is(err, services.ErrInvalid):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
	default:
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Request failed")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}

// pathID parses the :id parameter, answering 400 when it is not a positive integer
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid ID format"))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into out, answering 400 on failure
func bindJSON(ctx *gin.Context, out any) bool {
	if err := ctx.ShouldBindJSON(out); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return false
	}
	return true
}

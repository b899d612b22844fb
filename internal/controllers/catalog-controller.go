package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-console/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogController handles HTTP requests for one catalog resource
type CatalogController interface {
	// List retrieves every entity
	List(c *gin.Context)
	// Get retrieves an entity by its ID
	Get(c *gin.Context)
	// Create creates a new entity
	Create(c *gin.Context)
	// Update partially updates an entity
	Update(c *gin.Context)
	// Replace fully updates an entity
	Replace(c *gin.Context)
	// Delete deletes an entity by its ID
	Delete(c *gin.Context)
}

type catalogController[E, C, P any] struct {
	service      services.CatalogService[E, C, P]
	notFoundCode string
}

// NewCatalogController creates a controller over service. notFoundCode is
// the error code answered when the addressed entity does not exist.
func NewCatalogController[E, C, P any](service services.CatalogService[E, C, P], notFoundCode string) CatalogController {
	return &catalogController[E, C, P]{service: service, notFoundCode: notFoundCode}
}

// List godoc
// @Summary List catalog entities
// @Tags catalog
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} models.APIError
// @Router /pizza/get_pizza_sizes [get]
func (c *catalogController[E, C, P]) List(ctx *gin.Context) {
	items, err := c.service.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, c.notFoundCode)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a catalog entity by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {object} object
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /pizza/get_pizza_size/{id} [get]
func (c *catalogController[E, C, P]) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	item, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, c.notFoundCode)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create a catalog entity
// @Tags catalog
// @Accept json
// @Produce json
// @Success 201 {object} object
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError "Referenced IDs not found"
// @Router /pizza/add_size [post]
func (c *catalogController[E, C, P]) Create(ctx *gin.Context) {
	var input C
	if !bindJSON(ctx, &input) {
		return
	}
	item, err := c.service.Create(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, c.notFoundCode)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Partially update a catalog entity
// @Description Only the fields present in the body are changed
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {object} object
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /pizza/update_size/{id} [patch]
func (c *catalogController[E, C, P]) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var patch P
	if !bindJSON(ctx, &patch) {
		return
	}
	item, err := c.service.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		respondError(ctx, err, c.notFoundCode)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Replace godoc
// @Summary Fully update a catalog entity
// @Description Every field is required
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Entity ID"
// @Success 200 {object} object
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /pizza/update_size/{id} [put]
func (c *catalogController[E, C, P]) Replace(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var input C
	if !bindJSON(ctx, &input) {
		return
	}
	item, err := c.service.Replace(ctx.Request.Context(), id, input)
	if err != nil {
		respondError(ctx, err, c.notFoundCode)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a catalog entity
// @Tags catalog
// @Param id path int true "Entity ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError "Still used by a pizza"
// @Router /pizza/delete_size/{id} [delete]
func (c *catalogController[E, C, P]) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err, c.notFoundCode)
		return
	}
	ctx.Status(http.StatusNoContent)
}

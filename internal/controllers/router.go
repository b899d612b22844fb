package controllers

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-pizza-console/internal/client"
	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/franciscosanchezn/gin-pizza-console/internal/services"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Controllers bundles the handlers of every backend resource
type Controllers struct {
	Sizes             CatalogController
	Sauces            CatalogController
	Crusts            CatalogController
	ToppingCategories CatalogController
	Toppings          CatalogController
	Pizzas            CatalogController
	Images            ImageController
}

// NewControllers wires services and controllers onto db and the image store
func NewControllers(db *gorm.DB, store *images.Store) Controllers {
	return Controllers{
		Sizes:             NewCatalogController(services.NewSizeService(db), models.ErrSizeNotFound),
		Sauces:            NewCatalogController(services.NewSauceService(db), models.ErrSauceNotFound),
		Crusts:            NewCatalogController(services.NewCrustService(db), models.ErrCrustNotFound),
		ToppingCategories: NewCatalogController(services.NewToppingCategoryService(db), models.ErrToppingCategoryNotFound),
		Toppings:          NewCatalogController(services.NewToppingService(db), models.ErrToppingNotFound),
		Pizzas:            NewCatalogController(services.NewPizzaService(db, store), models.ErrPizzaNotFound),
		Images:            NewImageController(services.NewImageService(store)),
	}
}

// RouterConfig holds what the HTTP layer needs besides the controllers
type RouterConfig struct {
	// ImagesDir is served under /images
	ImagesDir   string
	CORSOrigins []string
}

// SetupRouter initializes the Gin router with middleware and every route
func SetupRouter(cfg RouterConfig, c Controllers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(cfg.CORSOrigins))

	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	RegisterRoutes(router, c)

	if cfg.ImagesDir != "" {
		router.Static(images.PublicPrefix, cfg.ImagesDir)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Route not found"))
	})
	return router
}

// RegisterRoutes mounts the pizza REST contract on router
func RegisterRoutes(router gin.IRoutes, c Controllers) {
	registerCatalog(router, client.SizeRoutes, c.Sizes)
	registerCatalog(router, client.SauceRoutes, c.Sauces)
	registerCatalog(router, client.CrustRoutes, c.Crusts)
	registerCatalog(router, client.ToppingCategoryRoutes, c.ToppingCategories)
	registerCatalog(router, client.ToppingRoutes, c.Toppings)
	registerCatalog(router, client.PizzaRoutes, c.Pizzas)
	router.GET("/pizza/get_designer_pizza/:id", c.Pizzas.Get)

	router.POST("/pizza/upload_image", c.Images.Upload)
	router.DELETE("/pizza/delete_image/*ref", c.Images.Delete)
}

func registerCatalog(router gin.IRoutes, routes client.Routes, c CatalogController) {
	router.GET(routes.List, c.List)
	router.GET(routes.Get+"/:id", c.Get)
	router.POST(routes.Create, c.Create)
	router.PATCH(routes.Update+"/:id", c.Update)
	router.PUT(routes.Update+"/:id", c.Replace)
	router.DELETE(routes.Delete+"/:id", c.Delete)
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizza-api",
	})
}

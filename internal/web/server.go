// Package web serves the operator console as server-rendered HTML over gin.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-pizza-console/internal/console"
	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/franciscosanchezn/gin-pizza-console/internal/pricing"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("console").Funcs(template.FuncMap{
	"price":      pricing.FormatFloat,
	"money":      pricing.Format,
	"imageURL":   images.URL,
	"categories": categoryNames,
	"row":        func(path string, id int64) map[string]any { return map[string]any{"Path": path, "ID": id} },
}).ParseFS(templateFS, "templates/*.html"))

type navLink struct {
	Path  string
	Title string
}

var nav = []navLink{
	{"/", "Menu"},
	{"/sizes", "Sizes"},
	{"/sauces", "Sauces"},
	{"/crusts", "Crusts"},
	{"/topping_categories", "Topping categories"},
	{"/toppings", "Toppings"},
	{"/pizza_builder", "Pizza builder"},
}

// Server renders the console pages
type Server struct {
	console   *console.Console
	imageBase string
}

// NewServer creates a Server over c. imageBase is the URL browsers load pizza images from.
func NewServer(c *console.Console, imageBase string) *Server {
	return &Server{console: c, imageBase: imageBase}
}

// Router builds the gin engine serving every console page
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	router.SetHTMLTemplate(templates)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "pizza-console",
		})
	})
	router.GET("/", s.menu)
	router.GET("/images/*name", s.image)

	c := s.console
	register(router, s, page[models.Size, console.SizeForm]{
		path: "/sizes", template: "sizes.html", title: "Sizes", manager: c.Sizes,
	})
	register(router, s, page[models.Sauce, console.SauceForm]{
		path: "/sauces", template: "priced.html", title: "Sauces", manager: c.Sauces,
	})
	register(router, s, page[models.Crust, console.CrustForm]{
		path: "/crusts", template: "priced.html", title: "Crusts", manager: c.Crusts,
	})
	register(router, s, page[models.ToppingCategory, console.ToppingCategoryForm]{
		path: "/topping_categories", template: "topping_categories.html", title: "Topping categories", manager: c.ToppingCategories,
	})
	register(router, s, page[models.Topping, console.ToppingForm]{
		path: "/toppings", template: "toppings.html", title: "Toppings", manager: c.Toppings,
		load: s.loadToppings,
		data: func(h gin.H) { h["Categories"] = c.ToppingCategories.View().Items },
	})
	register(router, s, page[models.Pizza, console.PizzaForm]{
		path: "/pizza_builder", template: "pizza_builder.html", title: "Pizza builder", manager: c.Composer.Manager,
		load: c.Composer.Load,
		bind: bindPizzaForm,
		data: func(h gin.H) { h["Options"] = c.Composer.Options() },
	})

	router.NoRoute(func(ctx *gin.Context) { notFound(ctx, s) })
	return router
}

// base returns the template data every page shares
func (s *Server) base(title, path string) gin.H {
	return gin.H{
		"Title":     title,
		"Path":      path,
		"Nav":       nav,
		"ImageBase": s.imageBase,
	}
}

func (s *Server) menu(ctx *gin.Context) {
	var menu console.MenuPage
	s.console.Menu.Load(ctx.Request.Context(), menu.Collect)

	data := s.base("Menu", "/")
	data["Page"] = &menu
	ctx.HTML(http.StatusOK, "menu.html", data)
}

// image sends the browser to where the backend serves the file
func (s *Server) image(ctx *gin.Context) {
	name := strings.TrimPrefix(ctx.Param("name"), "/")
	if name == "" {
		notFound(ctx, s)
		return
	}
	ctx.Redirect(http.StatusFound, images.URL(s.imageBase, name))
}

// loadToppings refreshes the category options alongside the toppings
func (s *Server) loadToppings(ctx context.Context) error {
	return errors.Join(
		s.console.ToppingCategories.Load(ctx),
		s.console.Toppings.Load(ctx),
	)
}

func categoryNames(categories []models.ToppingCategory) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

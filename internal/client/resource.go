package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
)

// Routes lists the backend paths of one resource. Get, Update and Delete are
// prefixes the entity id is appended to.
type Routes struct {
	List   string
	Get    string
	Create string
	Update string
	Delete string
}

// Resource is a typed CRUD client for one backend entity.
// E is the entity, C its creation payload and P its partial update payload.
type Resource[E, C, P any] struct {
	client *Client
	routes Routes
}

// NewResource builds a resource client over the given routes
func NewResource[E, C, P any](c *Client, routes Routes) *Resource[E, C, P] {
	return &Resource[E, C, P]{client: c, routes: routes}
}

// List fetches every entity
func (r *Resource[E, C, P]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.client.Do(ctx, http.MethodGet, r.routes.List, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one entity by id
func (r *Resource[E, C, P]) Get(ctx context.Context, id int64) (E, error) {
	var out E
	err := r.client.Do(ctx, http.MethodGet, withID(r.routes.Get, id), nil, &out)
	return out, err
}

// Create stores a new entity and returns it with its server-assigned id
func (r *Resource[E, C, P]) Create(ctx context.Context, input C) (E, error) {
	var out E
	err := r.client.Do(ctx, http.MethodPost, r.routes.Create, input, &out)
	return out, err
}

// Update applies a partial update and returns the stored entity
func (r *Resource[E, C, P]) Update(ctx context.Context, id int64, patch P) (E, error) {
	var out E
	err := r.client.Do(ctx, http.MethodPatch, withID(r.routes.Update, id), patch, &out)
	return out, err
}

// Delete removes an entity
func (r *Resource[E, C, P]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, withID(r.routes.Delete, id), nil, nil)
}

func withID(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}

// Typed aliases for every backend resource
type (
	SizeClient            = Resource[models.Size, models.SizeInput, models.SizePatch]
	SauceClient           = Resource[models.Sauce, models.SauceInput, models.SaucePatch]
	CrustClient           = Resource[models.Crust, models.CrustInput, models.CrustPatch]
	ToppingClient         = Resource[models.Topping, models.ToppingInput, models.ToppingPatch]
	ToppingCategoryClient = Resource[models.ToppingCategory, models.ToppingCategoryInput, models.ToppingCategoryPatch]
	PizzaClient           = Resource[models.Pizza, models.PizzaInput, models.PizzaPatch]
)

// Backend REST paths
var (
	SizeRoutes = Routes{
		List:   "/pizza/get_pizza_sizes",
		Get:    "/pizza/get_pizza_size",
		Create: "/pizza/add_size",
		Update: "/pizza/update_size",
		Delete: "/pizza/delete_size",
	}
	SauceRoutes = Routes{
		List:   "/pizza/get_pizza_sauces",
		Get:    "/pizza/get_pizza_sauce",
		Create: "/pizza/add_sauce",
		Update: "/pizza/update_sauce",
		Delete: "/pizza/delete_sauce",
	}
	CrustRoutes = Routes{
		List:   "/pizza/get_pizza_crusts",
		Get:    "/pizza/get_pizza_crust",
		Create: "/pizza/add_crust",
		Update: "/pizza/update_crust",
		Delete: "/pizza/delete_crust",
	}
	ToppingRoutes = Routes{
		List:   "/pizza/get_pizza_toppings",
		Get:    "/pizza/get_pizza_topping",
		Create: "/pizza/add_topping",
		Update: "/pizza/update_topping",
		Delete: "/pizza/delete_topping",
	}
	ToppingCategoryRoutes = Routes{
		List:   "/pizza/get_pizza_topping_categories",
		Get:    "/pizza/get_pizza_topping_category",
		Create: "/pizza/add_pizza_topping_category",
		Update: "/pizza/update_pizza_topping_category",
		Delete: "/pizza/delete_pizza_topping_category",
	}
	PizzaRoutes = Routes{
		List:   "/pizza/get_designer_pizzas",
		Get:    "/pizza/get_pizza",
		Create: "/pizza/add_pizza",
		Update: "/pizza/update_pizza",
		Delete: "/pizza/delete_pizza",
	}
)

// API bundles a client per backend resource
type API struct {
	Sizes             *SizeClient
	Sauces            *SauceClient
	Crusts            *CrustClient
	Toppings          *ToppingClient
	ToppingCategories *ToppingCategoryClient
	Pizzas            *PizzaClient
	Images            *ImageClient
}

// NewAPI wires every resource client onto c
func NewAPI(c *Client) *API {
	return &API{
		Sizes:             NewResource[models.Size, models.SizeInput, models.SizePatch](c, SizeRoutes),
		Sauces:            NewResource[models.Sauce, models.SauceInput, models.SaucePatch](c, SauceRoutes),
		Crusts:            NewResource[models.Crust, models.CrustInput, models.CrustPatch](c, CrustRoutes),
		Toppings:          NewResource[models.Topping, models.ToppingInput, models.ToppingPatch](c, ToppingRoutes),
		ToppingCategories: NewResource[models.ToppingCategory, models.ToppingCategoryInput, models.ToppingCategoryPatch](c, ToppingCategoryRoutes),
		Pizzas:            NewResource[models.Pizza, models.PizzaInput, models.PizzaPatch](c, PizzaRoutes),
		Images:            NewImageClient(c),
	}
}

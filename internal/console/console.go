package console

import (
	"github.com/franciscosanchezn/gin-pizza-console/internal/client"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
)

// Console is every workflow the operator reaches, wired onto one backend
type Console struct {
	Sizes             *Manager[models.Size, SizeForm]
	Sauces            *Manager[models.Sauce, SauceForm]
	Crusts            *Manager[models.Crust, CrustForm]
	ToppingCategories *Manager[models.ToppingCategory, ToppingCategoryForm]
	Toppings          *Manager[models.Topping, ToppingForm]
	Composer          *Composer
	Menu              *Menu
}

// New builds the console over api
func New(api *client.API) *Console {
	return &Console{
		Sizes:             NewSizeManager(api.Sizes),
		Sauces:            NewSauceManager(api.Sauces),
		Crusts:            NewCrustManager(api.Crusts),
		ToppingCategories: NewToppingCategoryManager(api.ToppingCategories),
		Toppings:          NewToppingManager(api.Toppings),
		Composer: NewComposer(ComposerDeps{
			Pizzas:   api.Pizzas,
			Sizes:    api.Sizes,
			Sauces:   api.Sauces,
			Crusts:   api.Crusts,
			Toppings: api.Toppings,
			Images:   api.Images,
		}),
		Menu: NewMenu(MenuSources{
			Pizzas:   api.Pizzas,
			Sizes:    api.Sizes,
			Sauces:   api.Sauces,
			Crusts:   api.Crusts,
			Toppings: api.Toppings,
		}),
	}
}

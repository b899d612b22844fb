package models

// Pizza is a designer pizza composed from catalog entities.
// Sauce and crust are required, sizes and toppings may be empty.
type Pizza struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsAvailable bool      `json:"is_available" gorm:"not null"`
	Sizes       []Size    `json:"sizes" gorm:"many2many:pizza_sizes;"`
	SauceID     int64     `json:"sauce_id"`
	Sauce       Sauce     `json:"sauce"`
	CrustID     int64     `json:"crust_id"`
	Crust       Crust     `json:"crust"`
	Toppings    []Topping `json:"toppings" gorm:"many2many:pizza_toppings;"`
}

// SizeIDs returns the identifiers of the sizes the pizza is offered in
func (p Pizza) SizeIDs() []int64 {
	ids := make([]int64, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		ids = append(ids, s.ID)
	}
	return ids
}

// ToppingIDs returns the identifiers of the pizza's toppings
func (p Pizza) ToppingIDs() []int64 {
	ids := make([]int64, 0, len(p.Toppings))
	for _, t := range p.Toppings {
		ids = append(ids, t.ID)
	}
	return ids
}

// Available returns the pizzas whose availability flag is set, preserving order
func Available(pizzas []Pizza) []Pizza {
	out := make([]Pizza, 0, len(pizzas))
	for _, p := range pizzas {
		if p.IsAvailable {
			out = append(out, p)
		}
	}
	return out
}

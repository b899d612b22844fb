package models

// Size is a pizza size with the base price every pizza of that size starts from
type Size struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	Size      string  `json:"size" gorm:"not null"`
	BasePrice float64 `json:"base_price" gorm:"not null"`
}

// Sauce is the single sauce a pizza is built on
type Sauce struct {
	ID    int64   `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"not null"`
	Price float64 `json:"price" gorm:"not null"`
}

// Crust is the single crust a pizza is built on
type Crust struct {
	ID    int64   `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"not null"`
	Price float64 `json:"price" gorm:"not null"`
}

// ToppingCategory groups toppings for display and filtering. It never affects price.
type ToppingCategory struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
}

// TableName keeps the table name used by the original schema
func (ToppingCategory) TableName() string {
	return "topping_categories"
}

// Topping is an optional ingredient with its own price
type Topping struct {
	ID         int64             `json:"id" gorm:"primaryKey"`
	Name       string            `json:"name" gorm:"not null"`
	Price      float64           `json:"price" gorm:"not null"`
	Categories []ToppingCategory `json:"categories" gorm:"many2many:topping_categories_link;"`
}

// CategoryIDs returns the identifiers of the topping's categories
func (t Topping) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(t.Categories))
	for _, c := range t.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

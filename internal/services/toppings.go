package services

import (
	"errors"
	"sort"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"gorm.io/gorm"
)

// ToppingService provides methods to interact with toppings and their categories
type ToppingService = CatalogService[models.Topping, models.ToppingInput, models.ToppingPatch]

// NewToppingService creates a new instance of ToppingService. Toppings are
// listed by their first category name, uncategorized ones last, then by name.
func NewToppingService(db *gorm.DB) ToppingService {
	return &catalog[models.Topping, models.ToppingInput, models.ToppingPatch]{
		db:      db,
		noun:    "topping",
		id:      func(t models.Topping) int64 { return t.ID },
		preload: []string{"Categories"},
		omit:    []string{"Categories.*"},
		build: func(tx *gorm.DB, in models.ToppingInput) (models.Topping, error) {
			if err := errors.Join(checkName("name", &in.Name), checkPrice("price", &in.Price)); err != nil {
				return models.Topping{}, err
			}
			categories, err := findByIDs[models.ToppingCategory](tx, "Topping category", dedupe(in.CategoryIDs))
			if err != nil {
				return models.Topping{}, err
			}
			return models.Topping{Name: in.Name, Price: in.Price, Categories: categories}, nil
		},
		apply: func(tx *gorm.DB, t *models.Topping, p models.ToppingPatch) error {
			owner := &models.Topping{ID: t.ID}
			if err := updateNamePrice(tx, owner, p.Name, p.Price); err != nil {
				return err
			}
			if p.CategoryIDs == nil {
				return nil
			}
			categories, err := findByIDs[models.ToppingCategory](tx, "Topping category", dedupe(*p.CategoryIDs))
			if err != nil {
				return err
			}
			return replaceAssociation(tx, owner, "Categories", categories)
		},
		full: func(in models.ToppingInput) models.ToppingPatch {
			ids := append([]int64{}, in.CategoryIDs...)
			return models.ToppingPatch{Name: &in.Name, Price: &in.Price, CategoryIDs: &ids}
		},
		detach: func(tx *gorm.DB, id int64) error {
			if err := tx.Exec("DELETE FROM pizza_toppings WHERE topping_id = ?", id).Error; err != nil {
				return err
			}
			return tx.Exec("DELETE FROM topping_categories_link WHERE topping_id = ?", id).Error
		},
		order: sortToppings,
	}
}

func sortToppings(toppings []models.Topping) {
	sort.SliceStable(toppings, func(i, j int) bool {
		a, b := firstCategory(toppings[i]), firstCategory(toppings[j])
		switch {
		case a == b:
			return toppings[i].Name < toppings[j].Name
		case a == "":
			return false
		case b == "":
			return true
		default:
			return a < b
		}
	})
}

// firstCategory returns the alphabetically smallest category name, "" when there is none
func firstCategory(t models.Topping) string {
	first := ""
	for _, c := range t.Categories {
		if first == "" || c.Name < first {
			first = c.Name
		}
	}
	return first
}

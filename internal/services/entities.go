package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"gorm.io/gorm"
)

// Services per catalog entity
type (
	SizeService            = CatalogService[models.Size, models.SizeInput, models.SizePatch]
	SauceService           = CatalogService[models.Sauce, models.SauceInput, models.SaucePatch]
	CrustService           = CatalogService[models.Crust, models.CrustInput, models.CrustPatch]
	ToppingCategoryService = CatalogService[models.ToppingCategory, models.ToppingCategoryInput, models.ToppingCategoryPatch]
)

// NewSizeService creates a new instance of SizeService.
// Deleting a size removes it from every pizza offered in it.
func NewSizeService(db *gorm.DB) SizeService {
	return &catalog[models.Size, models.SizeInput, models.SizePatch]{
		db:   db,
		noun: "size",
		id:   func(s models.Size) int64 { return s.ID },
		build: func(_ *gorm.DB, in models.SizeInput) (models.Size, error) {
			if err := errors.Join(checkName("size", &in.Size), checkPrice("base_price", &in.BasePrice)); err != nil {
				return models.Size{}, err
			}
			return models.Size{Size: in.Size, BasePrice: in.BasePrice}, nil
		},
		apply: func(tx *gorm.DB, s *models.Size, p models.SizePatch) error {
			if err := errors.Join(checkName("size", p.Size), checkPrice("base_price", p.BasePrice)); err != nil {
				return err
			}
			columns := map[string]any{}
			if p.Size != nil {
				columns["size"] = *p.Size
			}
			if p.BasePrice != nil {
				columns["base_price"] = *p.BasePrice
			}
			return updateColumns(tx, &models.Size{ID: s.ID}, columns)
		},
		full: func(in models.SizeInput) models.SizePatch {
			return models.SizePatch{Size: &in.Size, BasePrice: &in.BasePrice}
		},
		detach: func(tx *gorm.DB, id int64) error {
			return tx.Exec("DELETE FROM pizza_sizes WHERE size_id = ?", id).Error
		},
	}
}

// NewSauceService creates a new instance of SauceService.
// A sauce used by a pizza cannot be deleted.
func NewSauceService(db *gorm.DB) SauceService {
	return &catalog[models.Sauce, models.SauceInput, models.SaucePatch]{
		db:   db,
		noun: "sauce",
		id:   func(s models.Sauce) int64 { return s.ID },
		build: func(_ *gorm.DB, in models.SauceInput) (models.Sauce, error) {
			if err := errors.Join(checkName("name", &in.Name), checkPrice("price", &in.Price)); err != nil {
				return models.Sauce{}, err
			}
			return models.Sauce{Name: in.Name, Price: in.Price}, nil
		},
		apply: func(tx *gorm.DB, s *models.Sauce, p models.SaucePatch) error {
			return updateNamePrice(tx, &models.Sauce{ID: s.ID}, p.Name, p.Price)
		},
		full: func(in models.SauceInput) models.SaucePatch {
			return models.SaucePatch{Name: &in.Name, Price: &in.Price}
		},
		detach: func(tx *gorm.DB, id int64) error {
			return refuseIfUsed(tx, "sauce", "sauce_id", id)
		},
	}
}

// NewCrustService creates a new instance of CrustService.
// A crust used by a pizza cannot be deleted.
func NewCrustService(db *gorm.DB) CrustService {
	return &catalog[models.Crust, models.CrustInput, models.CrustPatch]{
		db:   db,
		noun: "crust",
		id:   func(c models.Crust) int64 { return c.ID },
		build: func(_ *gorm.DB, in models.CrustInput) (models.Crust, error) {
			if err := errors.Join(checkName("name", &in.Name), checkPrice("price", &in.Price)); err != nil {
				return models.Crust{}, err
			}
			return models.Crust{Name: in.Name, Price: in.Price}, nil
		},
		apply: func(tx *gorm.DB, c *models.Crust, p models.CrustPatch) error {
			return updateNamePrice(tx, &models.Crust{ID: c.ID}, p.Name, p.Price)
		},
		full: func(in models.CrustInput) models.CrustPatch {
			return models.CrustPatch{Name: &in.Name, Price: &in.Price}
		},
		detach: func(tx *gorm.DB, id int64) error {
			return refuseIfUsed(tx, "crust", "crust_id", id)
		},
	}
}

// NewToppingCategoryService creates a new instance of ToppingCategoryService.
// Deleting a category detaches it from its toppings.
func NewToppingCategoryService(db *gorm.DB) ToppingCategoryService {
	return &catalog[models.ToppingCategory, models.ToppingCategoryInput, models.ToppingCategoryPatch]{
		db:   db,
		noun: "topping category",
		id:   func(c models.ToppingCategory) int64 { return c.ID },
		build: func(_ *gorm.DB, in models.ToppingCategoryInput) (models.ToppingCategory, error) {
			if err := checkName("name", &in.Name); err != nil {
				return models.ToppingCategory{}, err
			}
			return models.ToppingCategory{Name: in.Name, Description: in.Description}, nil
		},
		apply: func(tx *gorm.DB, c *models.ToppingCategory, p models.ToppingCategoryPatch) error {
			if err := checkName("name", p.Name); err != nil {
				return err
			}
			columns := map[string]any{}
			if p.Name != nil {
				columns["name"] = *p.Name
			}
			if p.Description != nil {
				columns["description"] = *p.Description
			}
			return updateColumns(tx, &models.ToppingCategory{ID: c.ID}, columns)
		},
		full: func(in models.ToppingCategoryInput) models.ToppingCategoryPatch {
			return models.ToppingCategoryPatch{Name: &in.Name, Description: &in.Description}
		},
		detach: func(tx *gorm.DB, id int64) error {
			return tx.Exec("DELETE FROM topping_categories_link WHERE topping_category_id = ?", id).Error
		},
	}
}

func updateNamePrice(tx *gorm.DB, model any, name *string, price *float64) error {
	if err := errors.Join(checkName("name", name), checkPrice("price", price)); err != nil {
		return err
	}
	columns := map[string]any{}
	if name != nil {
		columns["name"] = *name
	}
	if price != nil {
		columns["price"] = *price
	}
	return updateColumns(tx, model, columns)
}

// refuseIfUsed fails with ErrInUse when a pizza still references id through column
func refuseIfUsed(tx *gorm.DB, noun, column string, id int64) error {
	var count int64
	if err := tx.Model(&models.Pizza{}).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("checking pizzas using %s %d: %w", noun, id, err)
	}
	if count > 0 {
		return fmt.Errorf("%s %d is used by %d pizza(s): %w", noun, id, count, ErrInUse)
	}
	return nil
}

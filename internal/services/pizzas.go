package services

import (
	"errors"

	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PizzaService provides methods to interact with designer pizzas
type PizzaService = CatalogService[models.Pizza, models.PizzaInput, models.PizzaPatch]

// ImageRemover deletes a stored image by the reference kept on a pizza
type ImageRemover interface {
	Remove(ref string) error
}

// NewPizzaService creates a new instance of PizzaService. Deleting a pizza
// also removes its uploaded image when remover is not nil.
func NewPizzaService(db *gorm.DB, remover ImageRemover) PizzaService {
	return &catalog[models.Pizza, models.PizzaInput, models.PizzaPatch]{
		db:      db,
		noun:    "pizza",
		id:      func(p models.Pizza) int64 { return p.ID },
		preload: []string{"Sizes", "Sauce", "Crust", "Toppings", "Toppings.Categories"},
		omit:    []string{"Sauce", "Crust", "Sizes.*", "Toppings.*"},
		build:   buildPizza,
		apply:   applyPizza,
		full: func(in models.PizzaInput) models.PizzaPatch {
			sizes := append([]int64{}, in.SizeIDs...)
			toppings := append([]int64{}, in.ToppingIDs...)
			return models.PizzaPatch{
				Name:        &in.Name,
				Description: &in.Description,
				ImageURL:    &in.ImageURL,
				IsAvailable: &in.IsAvailable,
				SizeIDs:     &sizes,
				SauceID:     &in.SauceID,
				CrustID:     &in.CrustID,
				ToppingIDs:  &toppings,
			}
		},
		detach: func(tx *gorm.DB, id int64) error {
			if err := tx.Exec("DELETE FROM pizza_sizes WHERE pizza_id = ?", id).Error; err != nil {
				return err
			}
			return tx.Exec("DELETE FROM pizza_toppings WHERE pizza_id = ?", id).Error
		},
		deleted: func(p models.Pizza) {
			removePizzaImage(remover, p)
		},
	}
}

func buildPizza(tx *gorm.DB, in models.PizzaInput) (models.Pizza, error) {
	if err := checkName("name", &in.Name); err != nil {
		return models.Pizza{}, err
	}
	sizes, err := findByIDs[models.Size](tx, "Size", dedupe(in.SizeIDs))
	if err != nil {
		return models.Pizza{}, err
	}
	sauce, err := findOne[models.Sauce](tx, "Sauce", in.SauceID)
	if err != nil {
		return models.Pizza{}, err
	}
	crust, err := findOne[models.Crust](tx, "Crust", in.CrustID)
	if err != nil {
		return models.Pizza{}, err
	}
	toppings, err := findByIDs[models.Topping](tx, "Topping", dedupe(in.ToppingIDs))
	if err != nil {
		return models.Pizza{}, err
	}
	return models.Pizza{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsAvailable: in.IsAvailable,
		Sizes:       sizes,
		SauceID:     sauce.ID,
		CrustID:     crust.ID,
		Toppings:    toppings,
	}, nil
}

func applyPizza(tx *gorm.DB, p *models.Pizza, patch models.PizzaPatch) error {
	if err := checkName("name", patch.Name); err != nil {
		return err
	}
	owner := &models.Pizza{ID: p.ID}

	columns := map[string]any{}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.Description != nil {
		columns["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		columns["image_url"] = *patch.ImageURL
	}
	if patch.IsAvailable != nil {
		columns["is_available"] = *patch.IsAvailable
	}
	if patch.SauceID != nil {
		sauce, err := findOne[models.Sauce](tx, "Sauce", *patch.SauceID)
		if err != nil {
			return err
		}
		columns["sauce_id"] = sauce.ID
	}
	if patch.CrustID != nil {
		crust, err := findOne[models.Crust](tx, "Crust", *patch.CrustID)
		if err != nil {
			return err
		}
		columns["crust_id"] = crust.ID
	}

	var sizes []models.Size
	if patch.SizeIDs != nil {
		var err error
		if sizes, err = findByIDs[models.Size](tx, "Size", dedupe(*patch.SizeIDs)); err != nil {
			return err
		}
	}
	var toppings []models.Topping
	if patch.ToppingIDs != nil {
		var err error
		if toppings, err = findByIDs[models.Topping](tx, "Topping", dedupe(*patch.ToppingIDs)); err != nil {
			return err
		}
	}

	if err := updateColumns(tx, owner, columns); err != nil {
		return err
	}
	if patch.SizeIDs != nil {
		if err := replaceAssociation(tx, owner, "Sizes", sizes); err != nil {
			return err
		}
	}
	if patch.ToppingIDs != nil {
		if err := replaceAssociation(tx, owner, "Toppings", toppings); err != nil {
			return err
		}
	}
	return nil
}

// removePizzaImage deletes the upload a deleted pizza pointed to. Failures are only logged.
func removePizzaImage(remover ImageRemover, p models.Pizza) {
	if remover == nil || p.ImageURL == "" || images.IsExternal(p.ImageURL) {
		return
	}
	err := remover.Remove(p.ImageURL)
	switch {
	case err == nil:
		log.WithField("image", p.ImageURL).Info("Deleted image of removed pizza")
	case errors.Is(err, images.ErrNotFound):
		log.WithField("image", p.ImageURL).Debug("Image of removed pizza already gone")
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"pizza_id": p.ID,
			"image":    p.ImageURL,
		}).Error("Error deleting image file for pizza")
	}
}

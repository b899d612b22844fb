package database

import (
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type seedTopping struct {
	name     string
	price    float64
	category string
}

var seedToppings = []seedTopping{
	{"Pepperoni", 1.50, "Meat"},
	{"Mushrooms", 1.50, "Vegetable"},
	{"Onions", 1.00, "Vegetable"},
	{"Bell Peppers", 1.00, "Vegetable"},
	{"Spinach", 1.00, "Vegetable"},
	{"Anchovies", 1.00, "Meat"},
	{"Pineapple", 1.00, "Vegetable"},
	{"Ham", 1.50, "Meat"},
	{"Sausage", 1.50, "Meat"},
	{"Chicken", 1.50, "Meat"},
	{"Bacon", 1.50, "Meat"},
	{"Artichoke", 1.00, "Vegetable"},
	{"Jalapenos", 1.00, "Vegetable"},
	{"Olives", 1.00, "Vegetable"},
	{"Tomatoes", 1.00, "Vegetable"},
	{"Garlic", 1.00, "Vegetable"},
	{"Red Onions", 1.00, "Vegetable"},
	{"Green Onions", 1.00, "Vegetable"},
	{"Red Peppers", 1.00, "Vegetable"},
}

// Seed fills an empty catalog with the house sizes, sauces, crusts, toppings
// and designer pizzas. It reports whether anything was written.
func Seed(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.Size{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting sizes: %w", err)
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return false, nil
	}

	log.Info("Database is empty, seeding initial data")
	err := db.Transaction(func(tx *gorm.DB) error {
		sizes := []models.Size{
			{Size: "Small", BasePrice: 10},
			{Size: "Medium", BasePrice: 15},
			{Size: "Large", BasePrice: 20},
			{Size: "Extra Large", BasePrice: 25},
		}
		if err := tx.Create(&sizes).Error; err != nil {
			return fmt.Errorf("creating sizes: %w", err)
		}

		sauces := []models.Sauce{
			{Name: "Tomato", Price: 1},
			{Name: "Alfredo", Price: 2},
			{Name: "Barbecue", Price: 2},
		}
		if err := tx.Create(&sauces).Error; err != nil {
			return fmt.Errorf("creating sauces: %w", err)
		}

		crusts := []models.Crust{
			{Name: "Thin", Price: 1},
			{Name: "Thick", Price: 2},
			{Name: "Deep Dish", Price: 3},
			{Name: "Gluten Free", Price: 3},
			{Name: "Stuffed", Price: 3},
		}
		if err := tx.Create(&crusts).Error; err != nil {
			return fmt.Errorf("creating crusts: %w", err)
		}

		categories := map[string]*models.ToppingCategory{
			"Meat":      {Name: "Meat", Description: "Meat toppings"},
			"Vegetable": {Name: "Vegetable", Description: "Vegetable toppings"},
		}
		for _, name := range []string{"Meat", "Vegetable"} {
			if err := tx.Create(categories[name]).Error; err != nil {
				return fmt.Errorf("creating topping category %s: %w", name, err)
			}
		}

		toppings := make(map[string]models.Topping, len(seedToppings))
		var vegetables []models.Topping
		for _, st := range seedToppings {
			topping := models.Topping{
				Name:       st.name,
				Price:      st.price,
				Categories: []models.ToppingCategory{*categories[st.category]},
			}
			if err := tx.Omit("Categories.*").Create(&topping).Error; err != nil {
				return fmt.Errorf("creating topping %s: %w", st.name, err)
			}
			toppings[st.name] = topping
			if st.category == "Vegetable" {
				vegetables = append(vegetables, topping)
			}
		}

		tomato, thick := sauces[0], crusts[1]
		pizzas := []models.Pizza{
			{
				Name:        "Margherita",
				Description: "A classic pizza with tomato sauce, mozzarella, and basil",
				ImageURL:    "https://example.com/margherita.jpg",
				Toppings:    []models.Topping{toppings["Onions"], toppings["Bell Peppers"], toppings["Spinach"]},
			},
			{
				Name:        "Pepperoni",
				Description: "A pizza with pepperoni, mozzarella, and tomato sauce",
				ImageURL:    "https://example.com/pepperoni.jpg",
				Toppings:    []models.Topping{toppings["Pepperoni"]},
			},
			{
				Name:        "Vegetarian",
				Description: "A pizza with vegetables, mozzarella, and tomato sauce",
				ImageURL:    "https://example.com/vegetarian.jpg",
				Toppings:    vegetables,
			},
		}
		for i := range pizzas {
			pizzas[i].IsAvailable = true
			pizzas[i].Sizes = sizes
			pizzas[i].SauceID = tomato.ID
			pizzas[i].CrustID = thick.ID
			err := tx.Omit("Sauce", "Crust", "Sizes.*", "Toppings.*").Create(&pizzas[i]).Error
			if err != nil {
				return fmt.Errorf("creating pizza %s: %w", pizzas[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.WithFields(logrus.Fields{
		"sizes":    4,
		"toppings": len(seedToppings),
		"pizzas":   3,
	}).Info("Database seeded successfully")
	return true, nil
}

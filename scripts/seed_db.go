package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/gin-pizza-console/internal/database"
)

func main() {
	// Parse command line flags
	driver := flag.String("driver", "sqlite", "Database driver (sqlite or postgres)")
	path := flag.String("path", "pizza.sqlite", "SQLite database file")
	url := flag.String("url", "", "PostgreSQL connection URL")
	flag.Parse()

	db, err := database.InitDatabase(database.DatabaseConfig{Driver: *driver, Path: *path, URL: *url})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seeded, err := database.Seed(db)
	if err != nil {
		log.Fatal("Failed to seed database:", err)
	}
	if !seeded {
		fmt.Println("Catalog already present, nothing to seed")
		return
	}
	fmt.Println("✓ Catalog seeded with sizes, sauces, crusts, toppings and three pizzas")
}

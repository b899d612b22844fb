package main

import (
	"fmt"

	_ "github.com/franciscosanchezn/gin-pizza-console/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-pizza-console/internal/config"
	"github.com/franciscosanchezn/gin-pizza-console/internal/controllers"
	"github.com/franciscosanchezn/gin-pizza-console/internal/database"
	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// @title Pizza API
// @version 1.0
// @description Catalog of sizes, sauces, crusts, toppings and designer pizzas
// @host localhost:9002
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration := loadConfig()
	if level, err := log.ParseLevel(configuration.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Initialize database connection
	db := setupDatabase(configuration)

	store, err := images.NewStore(configuration.ImagesDir)
	checkPanicErr(err)

	router := controllers.SetupRouter(controllers.RouterConfig{
		ImagesDir:   configuration.ImagesDir,
		CORSOrigins: configuration.CORSOrigins,
	}, controllers.NewControllers(db, store))

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	if err := router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(config.LevelForEnvironment(config.GetEnvWithDefault("APP_ENV", "development")))
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// databaseConfig maps the backend configuration onto the connection settings
func databaseConfig(conf *config.Config) database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:   conf.DBDriver,
		URL:      conf.DatabaseURL,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	}
}

// setupDatabase opens the database, migrates the schema and seeds it when empty
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(databaseConfig(conf))
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	if !conf.SeedOnStart {
		return db
	}
	seeded, err := database.Seed(db)
	checkPanicErr(err)
	if seeded {
		log.Info("Database seeded with initial data")
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name:     "sqlite file",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "pizza.sqlite"},
			expected: "pizza.sqlite?_foreign_keys=on",
		},
		{
			name:     "sqlite with params",
			cfg:      DatabaseConfig{Path: "file:pizza.db?cache=shared"},
			expected: "file:pizza.db?cache=shared&_foreign_keys=on",
		},
		{
			name: "postgres fields",
			cfg: DatabaseConfig{Driver: "Postgres", Host: "db", User: "pizza", Password: "pw",
				Name: "pizza", Port: "5432", SSLMode: "disable"},
			expected: "host=db user=pizza password=pw dbname=pizza port=5432 sslmode=disable",
		},
		{
			name:     "postgres url wins",
			cfg:      DatabaseConfig{Driver: "postgres", URL: "postgres://pizza@db/pizza", Host: "ignored"},
			expected: "postgres://pizza@db/pizza",
		},
		{
			name:     "unknown driver",
			cfg:      DatabaseConfig{Driver: "mysql"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestBackoff(t *testing.T) {
	testCases := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{5, 16 * time.Second},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, backoff(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestInitDatabaseRetries(t *testing.T) {
	var waits []time.Duration
	sleep = func(d time.Duration) { waits = append(waits, d) }
	t.Cleanup(func() { sleep = time.Sleep })

	path := filepath.Join(t.TempDir(), "missing", "pizza.sqlite")
	_, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: path, MaxRetries: 3})

	assert.ErrorContains(t, err, "after 3 attempts")
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, waits)
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)

	seeded, err := Seed(db)
	require.NoError(t, err)
	assert.True(t, seeded)

	counts := map[any]int64{
		&models.Size{}:            4,
		&models.Sauce{}:           3,
		&models.Crust{}:           5,
		&models.ToppingCategory{}: 2,
		&models.Topping{}:         19,
		&models.Pizza{}:           3,
	}
	for model, expected := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, expected, n, "%T", model)
	}

	var vegetarian models.Pizza
	require.NoError(t, db.Preload("Sizes").Preload("Toppings").Preload("Sauce").Preload("Crust").
		Where("name = ?", "Vegetarian").First(&vegetarian).Error)
	assert.True(t, vegetarian.IsAvailable)
	assert.Len(t, vegetarian.Sizes, 4)
	assert.Len(t, vegetarian.Toppings, 13)
	assert.Equal(t, "Tomato", vegetarian.Sauce.Name)
	assert.Equal(t, "Thick", vegetarian.Crust.Name)

	var pepperoni models.Topping
	require.NoError(t, db.Preload("Categories").Where("name = ?", "Pepperoni").First(&pepperoni).Error)
	require.Len(t, pepperoni.Categories, 1)
	assert.Equal(t, "Meat", pepperoni.Categories[0].Name)

	var categories int64
	require.NoError(t, db.Model(&models.ToppingCategory{}).Count(&categories).Error)
	assert.Equal(t, int64(2), categories, "categories must not be duplicated by the topping inserts")
}

func TestSeedRunsOnce(t *testing.T) {
	db := setupTestDB(t)

	_, err := Seed(db)
	require.NoError(t, err)
	seeded, err := Seed(db)
	require.NoError(t, err)
	assert.False(t, seeded)

	var n int64
	require.NoError(t, db.Model(&models.Pizza{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
}

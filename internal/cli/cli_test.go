package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-console/internal/console"
	"github.com/franciscosanchezn/gin-pizza-console/internal/controllers"
	"github.com/franciscosanchezn/gin-pizza-console/internal/database"
	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededBackend serves the reference API over a seeded in-memory catalog
func seededBackend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	_, err = database.Seed(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	store, err := images.NewStore(t.TempDir())
	require.NoError(t, err)

	srv := httptest.NewServer(controllers.SetupRouter(controllers.RouterConfig{ImagesDir: store.Dir()}, controllers.NewControllers(db, store)))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	root := New(&out).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMenuCommand(t *testing.T) {
	srv := seededBackend(t)

	out, err := execute(t, "menu", "--api-url", srv.URL)

	require.NoError(t, err)
	assert.Contains(t, out, "Pizza Menu")
	assert.Contains(t, out, "Margherita")
	// Small 10 + Tomato 1 + Thick 2 + three vegetables at 1
	assert.Regexp(t, `Small\s+16\.00`, out)
	assert.Contains(t, out, "Toppings")
	assert.Regexp(t, `Ham\s+1\.50 \(Meat\)`, out)
}

func TestMenuCommandUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	out, err := execute(t, "menu", "--api-url", url)

	require.Error(t, err)
	assert.Contains(t, out, "failed to load pizzas")
}

func TestInvalidAPIURL(t *testing.T) {
	_, err := execute(t, "menu", "--api-url", "not a url")

	assert.Error(t, err)
}

func TestRenderMenu(t *testing.T) {
	var page console.MenuPage
	page.Collect(console.Section{Kind: console.SectionSizes, Sizes: []models.Size{{ID: 1, Size: "Small", BasePrice: 10}}})
	page.Collect(console.Section{Kind: console.SectionSauces, Err: assert.AnError})

	out := renderMenu(&page)

	assert.Contains(t, out, "Sizes")
	assert.Regexp(t, `Small\s+10\.00`, out)
	assert.Contains(t, out, "failed to load sauces")
	assert.Contains(t, out, "nothing yet")
}

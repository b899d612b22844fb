package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-console/internal/database"
	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	sizes      SizeService
	sauces     SauceService
	crusts     CrustService
	categories ToppingCategoryService
	toppings   ToppingService
	pizzas     PizzaService
	store      *images.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := setupTestDB(t)
	store, err := images.NewStore(t.TempDir())
	require.NoError(t, err)
	return fixture{
		sizes:      NewSizeService(db),
		sauces:     NewSauceService(db),
		crusts:     NewCrustService(db),
		categories: NewToppingCategoryService(db),
		toppings:   NewToppingService(db),
		pizzas:     NewPizzaService(db, store),
		store:      store,
	}
}

// catalog creates a small catalog and returns the ids it assigned
func (f fixture) catalog(t *testing.T) (small, large, tomato, thin, meat, ham, basil int64) {
	t.Helper()
	ctx := context.Background()
	s, err := f.sizes.Create(ctx, models.SizeInput{Size: "Small", BasePrice: 10})
	require.NoError(t, err)
	l, err := f.sizes.Create(ctx, models.SizeInput{Size: "Large", BasePrice: 20})
	require.NoError(t, err)
	sauce, err := f.sauces.Create(ctx, models.SauceInput{Name: "Tomato", Price: 1})
	require.NoError(t, err)
	crust, err := f.crusts.Create(ctx, models.CrustInput{Name: "Thin", Price: 2})
	require.NoError(t, err)
	cat, err := f.categories.Create(ctx, models.ToppingCategoryInput{Name: "Meat"})
	require.NoError(t, err)
	h, err := f.toppings.Create(ctx, models.ToppingInput{Name: "Ham", Price: 1.5, CategoryIDs: []int64{cat.ID}})
	require.NoError(t, err)
	b, err := f.toppings.Create(ctx, models.ToppingInput{Name: "Basil", Price: 0.5})
	require.NoError(t, err)
	return s.ID, l.ID, sauce.ID, crust.ID, cat.ID, h.ID, b.ID
}

func TestSizeCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.sizes.Create(ctx, models.SizeInput{Size: "Medium", BasePrice: 15})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	zero := 0.0
	updated, err := f.sizes.Update(ctx, created.ID, models.SizePatch{BasePrice: &zero})
	require.NoError(t, err)
	assert.Equal(t, "Medium", updated.Size, "absent fields stay unchanged")
	assert.Equal(t, 0.0, updated.BasePrice)

	replaced, err := f.sizes.Replace(ctx, created.ID, models.SizeInput{Size: "M", BasePrice: 14})
	require.NoError(t, err)
	assert.Equal(t, models.Size{ID: created.ID, Size: "M", BasePrice: 14}, replaced)

	require.NoError(t, f.sizes.Delete(ctx, created.ID))
	_, err = f.sizes.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.sizes.Delete(ctx, created.ID), ErrNotFound)
}

func TestRejectsBlankNamesAndNegativePrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.sauces.Create(ctx, models.SauceInput{Name: "  ", Price: 1})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = f.crusts.Create(ctx, models.CrustInput{Name: "Thin", Price: -1})
	assert.ErrorIs(t, err, ErrInvalid)

	sauce, err := f.sauces.Create(ctx, models.SauceInput{Name: "Tomato", Price: 1})
	require.NoError(t, err)
	blank := ""
	_, err = f.sauces.Update(ctx, sauce.ID, models.SaucePatch{Name: &blank})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestToppingCategoriesMustExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.toppings.Create(ctx, models.ToppingInput{Name: "Ham", Price: 1, CategoryIDs: []int64{41, 42}})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, []int64{41, 42}, refErr.IDs)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Topping category IDs not found: [41, 42]", err.Error())
}

func TestToppingListOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	veg, err := f.categories.Create(ctx, models.ToppingCategoryInput{Name: "Vegetable"})
	require.NoError(t, err)
	meat, err := f.categories.Create(ctx, models.ToppingCategoryInput{Name: "Meat"})
	require.NoError(t, err)

	for _, in := range []models.ToppingInput{
		{Name: "Truffle", Price: 4},
		{Name: "Onions", Price: 1, CategoryIDs: []int64{veg.ID}},
		{Name: "Ham", Price: 1.5, CategoryIDs: []int64{meat.ID}},
		{Name: "Bacon", Price: 1.5, CategoryIDs: []int64{veg.ID, meat.ID}},
	} {
		_, err := f.toppings.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := f.toppings.List(ctx)
	require.NoError(t, err)

	var names []string
	for _, tp := range list {
		names = append(names, tp.Name)
	}
	assert.Equal(t, []string{"Bacon", "Ham", "Onions", "Truffle"}, names)
}

func TestToppingPatchReplacesCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, _, _, meat, ham, _ := f.catalog(t)

	cleared := []int64{}
	updated, err := f.toppings.Update(ctx, ham, models.ToppingPatch{CategoryIDs: &cleared})
	require.NoError(t, err)
	assert.Empty(t, updated.Categories)

	restored := []int64{meat}
	updated, err = f.toppings.Update(ctx, ham, models.ToppingPatch{CategoryIDs: &restored})
	require.NoError(t, err)
	assert.Equal(t, []int64{meat}, updated.CategoryIDs())
	assert.Equal(t, 1.5, updated.Price)
}

func TestPizzaCreateLoadsAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	small, large, tomato, thin, _, ham, basil := f.catalog(t)

	pizza, err := f.pizzas.Create(ctx, models.PizzaInput{
		Name:       "Hawaiian",
		SizeIDs:    []int64{large, small, large},
		SauceID:    tomato,
		CrustID:    thin,
		ToppingIDs: []int64{ham, basil},
	})
	require.NoError(t, err)

	assert.False(t, pizza.IsAvailable, "availability false must be stored as sent")
	assert.ElementsMatch(t, []int64{small, large}, pizza.SizeIDs())
	assert.ElementsMatch(t, []int64{ham, basil}, pizza.ToppingIDs())
	assert.Equal(t, "Tomato", pizza.Sauce.Name)
	assert.Equal(t, "Thin", pizza.Crust.Name)

	sauces, err := f.sauces.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sauces, 1, "creating a pizza must not insert catalog rows")
}

func TestPizzaCreateReportsMissingReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	small, _, tomato, thin, _, _, _ := f.catalog(t)

	testCases := []struct {
		name  string
		input models.PizzaInput
		kind  string
		ids   []int64
	}{
		{
			name:  "missing sizes",
			input: models.PizzaInput{Name: "P", SizeIDs: []int64{small, 90, 91}, SauceID: tomato, CrustID: thin},
			kind:  "Size",
			ids:   []int64{90, 91},
		},
		{
			name:  "missing sauce",
			input: models.PizzaInput{Name: "P", SauceID: 77, CrustID: thin},
			kind:  "Sauce",
			ids:   []int64{77},
		},
		{
			name:  "missing crust",
			input: models.PizzaInput{Name: "P", SauceID: tomato, CrustID: 78},
			kind:  "Crust",
			ids:   []int64{78},
		},
		{
			name:  "missing toppings",
			input: models.PizzaInput{Name: "P", SauceID: tomato, CrustID: thin, ToppingIDs: []int64{99}},
			kind:  "Topping",
			ids:   []int64{99},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.pizzas.Create(ctx, tt.input)
			var refErr *ReferenceError
			require.ErrorAs(t, err, &refErr)
			assert.Equal(t, tt.kind, refErr.Kind)
			assert.Equal(t, tt.ids, refErr.IDs)
		})
	}

	list, err := f.pizzas.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPizzaPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	small, large, tomato, thin, _, ham, basil := f.catalog(t)
	pizza, err := f.pizzas.Create(ctx, models.PizzaInput{
		Name: "Hawaiian", Description: "Sweet", IsAvailable: true,
		SizeIDs: []int64{small}, SauceID: tomato, CrustID: thin, ToppingIDs: []int64{ham, basil},
	})
	require.NoError(t, err)

	sizes := []int64{small, large}
	noToppings := []int64{}
	off := false
	updated, err := f.pizzas.Update(ctx, pizza.ID, models.PizzaPatch{
		SizeIDs:     &sizes,
		ToppingIDs:  &noToppings,
		IsAvailable: &off,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hawaiian", updated.Name)
	assert.Equal(t, "Sweet", updated.Description)
	assert.False(t, updated.IsAvailable)
	assert.ElementsMatch(t, sizes, updated.SizeIDs())
	assert.Empty(t, updated.Toppings)
	assert.Equal(t, tomato, updated.SauceID)

	missing := int64(404)
	_, err = f.pizzas.Update(ctx, pizza.ID, models.PizzaPatch{CrustID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)

	unchanged, err := f.pizzas.Get(ctx, pizza.ID)
	require.NoError(t, err)
	assert.Equal(t, thin, unchanged.CrustID)
}

func TestDeletingSizeOrToppingClearsPizzas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	small, large, tomato, thin, _, ham, basil := f.catalog(t)
	pizza, err := f.pizzas.Create(ctx, models.PizzaInput{
		Name: "Hawaiian", SizeIDs: []int64{small, large}, SauceID: tomato, CrustID: thin,
		ToppingIDs: []int64{ham, basil},
	})
	require.NoError(t, err)

	require.NoError(t, f.sizes.Delete(ctx, large))
	require.NoError(t, f.toppings.Delete(ctx, ham))

	got, err := f.pizzas.Get(ctx, pizza.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{small}, got.SizeIDs())
	assert.Equal(t, []int64{basil}, got.ToppingIDs())
}

func TestDeletingUsedSauceOrCrustIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, tomato, thin, _, _, _ := f.catalog(t)
	pizza, err := f.pizzas.Create(ctx, models.PizzaInput{Name: "Plain", SauceID: tomato, CrustID: thin})
	require.NoError(t, err)

	assert.ErrorIs(t, f.sauces.Delete(ctx, tomato), ErrInUse)
	assert.ErrorIs(t, f.crusts.Delete(ctx, thin), ErrInUse)

	require.NoError(t, f.pizzas.Delete(ctx, pizza.ID))
	assert.NoError(t, f.sauces.Delete(ctx, tomato))
	assert.NoError(t, f.crusts.Delete(ctx, thin))
}

func TestDeletingCategoryDetachesToppings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, _, _, meat, ham, _ := f.catalog(t)

	require.NoError(t, f.categories.Delete(ctx, meat))

	got, err := f.toppings.Get(ctx, ham)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
}

func TestDeletingPizzaRemovesItsImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, tomato, thin, _, _, _ := f.catalog(t)
	stored, err := f.store.Save("p.png", strings.NewReader("png"))
	require.NoError(t, err)

	pizza, err := f.pizzas.Create(ctx, models.PizzaInput{Name: "Pic", SauceID: tomato, CrustID: thin, ImageURL: stored.Filename})
	require.NoError(t, err)
	external, err := f.pizzas.Create(ctx, models.PizzaInput{Name: "Ext", SauceID: tomato, CrustID: thin, ImageURL: "https://example.com/x.jpg"})
	require.NoError(t, err)

	require.NoError(t, f.pizzas.Delete(ctx, pizza.ID))
	require.NoError(t, f.pizzas.Delete(ctx, external.ID))

	_, err = os.Stat(filepath.Join(f.store.Dir(), images.Name(stored.Filename)))
	assert.True(t, os.IsNotExist(err))
}

func TestImageService(t *testing.T) {
	store, err := images.NewStore(t.TempDir())
	require.NoError(t, err)
	svc := NewImageService(store)

	uploaded, err := svc.Upload("crust.JPG", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploaded.Filename, "dist/images/"))
	assert.True(t, strings.HasPrefix(uploaded.Path, "/images/"))

	require.NoError(t, svc.Delete(uploaded.Path), "public paths are accepted too")
	assert.ErrorIs(t, svc.Delete(uploaded.Filename), ErrNotFound)
	assert.ErrorIs(t, svc.Delete("../../etc/passwd"), ErrInvalid)
}

package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-console/internal/database"
	"github.com/franciscosanchezn/gin-pizza-console/internal/images"
	"github.com/franciscosanchezn/gin-pizza-console/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	dir    string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	dir := t.TempDir()
	store, err := images.NewStore(dir)
	require.NoError(t, err)

	router := SetupRouter(RouterConfig{ImagesDir: dir}, NewControllers(db, store))
	return testServer{router: router, dir: dir}
}

func (s testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "healthy", body["status"])
}

func TestSizeEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/pizza/add_size", models.SizeInput{Size: "Small", BasePrice: 10})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Size](t, w)
	assert.NotZero(t, created.ID)

	w = s.do(t, http.MethodGet, "/pizza/get_pizza_sizes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Size](t, w), 1)

	w = s.do(t, http.MethodPatch, "/pizza/update_size/1", map[string]any{"base_price": 12.5})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Size](t, w)
	assert.Equal(t, "Small", updated.Size)
	assert.Equal(t, 12.5, updated.BasePrice)

	w = s.do(t, http.MethodPut, "/pizza/update_size/1", models.SizeInput{Size: "Tiny", BasePrice: 0})
	require.Equal(t, http.StatusOK, w.Code)
	replaced := decode[models.Size](t, w)
	assert.Equal(t, "Tiny", replaced.Size)
	assert.Zero(t, replaced.BasePrice)

	w = s.do(t, http.MethodDelete, "/pizza/delete_size/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/pizza/get_pizza_size/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrSizeNotFound, decode[models.APIError](t, w).Code)
}

func TestCatalogErrors(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/pizza/add_sauce", models.SauceInput{Name: "Tomato", Price: 1}).Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/pizza/add_crust", models.CrustInput{Name: "Thin", Price: 2}).Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/pizza/add_pizza", models.PizzaInput{Name: "Plain", SauceID: 1, CrustID: 1}).Code)

	testCases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"invalid id", http.MethodGet, "/pizza/get_pizza_sauce/abc", nil, http.StatusBadRequest, models.ErrBadRequest},
		{"zero id", http.MethodDelete, "/pizza/delete_crust/0", nil, http.StatusBadRequest, models.ErrBadRequest},
		{"missing crust", http.MethodGet, "/pizza/get_pizza_crust/99", nil, http.StatusNotFound, models.ErrCrustNotFound},
		{"missing topping", http.MethodPatch, "/pizza/update_topping/99", map[string]any{"price": 1}, http.StatusNotFound, models.ErrToppingNotFound},
		{"missing name", http.MethodPost, "/pizza/add_sauce", map[string]any{"price": 1}, http.StatusBadRequest, models.ErrValidationFailed},
		{"negative price", http.MethodPost, "/pizza/add_crust", models.CrustInput{Name: "Bad", Price: -1}, http.StatusBadRequest, models.ErrValidationFailed},
		{"blank name patch", http.MethodPatch, "/pizza/update_sauce/1", map[string]any{"name": "  "}, http.StatusBadRequest, models.ErrValidationFailed},
		{"unknown category", http.MethodPost, "/pizza/add_topping", models.ToppingInput{Name: "Ham", CategoryIDs: []int64{41, 42}}, http.StatusNotFound, models.ErrReferenceNotFound},
		{"unknown sauce", http.MethodPost, "/pizza/add_pizza", models.PizzaInput{Name: "X", SauceID: 9, CrustID: 1}, http.StatusNotFound, models.ErrReferenceNotFound},
		{"sauce in use", http.MethodDelete, "/pizza/delete_sauce/1", nil, http.StatusConflict, models.ErrInUse},
		{"missing pizza", http.MethodDelete, "/pizza/delete_pizza/99", nil, http.StatusNotFound, models.ErrPizzaNotFound},
		{"unknown route", http.MethodGet, "/pizza/nothing", nil, http.StatusNotFound, models.ErrNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[models.APIError](t, w).Code)
		})
	}
}

func TestReferenceErrorListsMissingIDs(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/pizza/add_topping", models.ToppingInput{Name: "Ham", CategoryIDs: []int64{41, 42}})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Topping category IDs not found: [41, 42]", decode[models.APIError](t, w).Message)
}

func TestPizzaRoutes(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/pizza/add_size", models.SizeInput{Size: "Small", BasePrice: 10})
	s.do(t, http.MethodPost, "/pizza/add_sauce", models.SauceInput{Name: "Tomato", Price: 1})
	s.do(t, http.MethodPost, "/pizza/add_crust", models.CrustInput{Name: "Thin", Price: 2})
	s.do(t, http.MethodPost, "/pizza/add_topping", models.ToppingInput{Name: "Basil", Price: 0.5})

	w := s.do(t, http.MethodPost, "/pizza/add_pizza", models.PizzaInput{
		Name: "Margherita", SizeIDs: []int64{1}, SauceID: 1, CrustID: 1, ToppingIDs: []int64{1}, IsAvailable: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, path := range []string{"/pizza/get_pizza/1", "/pizza/get_designer_pizza/1"} {
		w = s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		pizza := decode[models.Pizza](t, w)
		assert.Equal(t, "Thin", pizza.Crust.Name)
		assert.Equal(t, []int64{1}, pizza.ToppingIDs())
	}

	w = s.do(t, http.MethodPatch, "/pizza/update_pizza/1", map[string]any{"topping_ids": []int64{}, "is_available": false})
	require.Equal(t, http.StatusOK, w.Code)
	pizza := decode[models.Pizza](t, w)
	assert.Empty(t, pizza.Toppings)
	assert.False(t, pizza.IsAvailable)
	assert.Equal(t, []int64{1}, pizza.SizeIDs())

	w = s.do(t, http.MethodGet, "/pizza/get_designer_pizzas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Pizza](t, w), 1)
}

func upload(t *testing.T, s testServer, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/pizza/upload_image", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestImageUploadServeAndDelete(t *testing.T) {
	s := newTestServer(t)

	w := upload(t, s, "pie.png", "png-bytes")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	uploaded := decode[models.UploadedImage](t, w)
	assert.True(t, strings.HasPrefix(uploaded.Filename, images.StoragePrefix), uploaded.Filename)
	assert.True(t, strings.HasPrefix(uploaded.Path, images.PublicPrefix), uploaded.Path)

	w = s.do(t, http.MethodGet, uploaded.Path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	w = s.do(t, http.MethodDelete, "/pizza/delete_image/"+uploaded.Filename, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "File deleted successfully", decode[map[string]string](t, w)["message"])

	_, err := os.Stat(filepath.Join(s.dir, images.Name(uploaded.Filename)))
	assert.True(t, os.IsNotExist(err))

	w = s.do(t, http.MethodDelete, "/pizza/delete_image/"+uploaded.Filename, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrImageNotFound, decode[models.APIError](t, w).Code)
}

func TestImageUploadRequiresFile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/pizza/upload_image", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrBadRequest, decode[models.APIError](t, w).Code)
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"tienda/internal/handlers"
	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp builds a Fiber app on a private in-memory SQLite database with
// every handler wired, plus a seeded admin account.
func setupApp(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Country{}, &models.Province{}, &models.City{},
		&models.Color{}, &models.Size{}, &models.Supplier{}, &models.Category{},
		&models.Product{}, &models.User{}, &models.Person{}, &models.Order{},
	)
	require.NoError(t, err)

	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	colorRepo := repositories.NewGORMColorRepository(db)
	sizeRepo := repositories.NewGORMSizeRepository(db)
	supplierRepo := repositories.NewGORMSupplierRepository(db)
	geoRepo := repositories.NewGORMGeoRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	productService := services.NewProductService(productRepo, nil)
	catalogService := services.NewCatalogService(categoryRepo, colorRepo, sizeRepo, supplierRepo)
	orderService := services.NewOrderService(orderRepo, nil)
	geoService := services.NewGeoService(geoRepo)

	require.NoError(t, authService.CreateAdmin(&models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "adminpass123",
	}))

	app := fiber.New()
	api := app.Group("/api")
	auth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(api, auth)
	handlers.NewProductHandler(productService).RegisterRoutes(api, auth)
	handlers.NewCategoryHandler(catalogService).RegisterRoutes(api, auth)
	handlers.NewReferenceHandler(catalogService).RegisterRoutes(api, auth)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, auth)
	handlers.NewGeoHandler(geoService).RegisterRoutes(api, auth)

	return app, authService
}

// doRequest runs a request against the app. token may be empty for
// anonymous calls; body may be nil.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerVisitor registers a fresh visitor account and returns its token.
func registerVisitor(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// loginAdmin logs in the seeded admin and returns its token.
func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": "admin",
		"password": "adminpass123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createProduct creates a color, a size and a product through the API and
// returns the product and color IDs.
func createProduct(t *testing.T, app *fiber.App, adminToken, name string, stock int) (productID, colorID string) {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/api/color", adminToken, map[string]string{"title": "Rojo " + name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var color models.Color
	decodeBody(t, resp, &color)

	resp = doRequest(t, app, http.MethodPost, "/api/size", adminToken, map[string]string{"title": "M " + name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var size models.Size
	decodeBody(t, resp, &size)

	resp = doRequest(t, app, http.MethodPost, "/api/product", adminToken, map[string]interface{}{
		"name":     name,
		"stock":    stock,
		"color_id": color.ID,
		"size_id":  size.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product handlers.ProductDetail
	decodeBody(t, resp, &product)
	require.NotEmpty(t, product.ID)

	return product.ID, color.ID
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRegisterLoginProfile(t *testing.T) {
	app, authService := setupApp(t)

	// Registration with a person profile.
	resp := doRequest(t, app, http.MethodPost, "/api/register", "", map[string]interface{}{
		"username": "maria",
		"email":    "maria@example.com",
		"password": "password123",
		"persona": map[string]string{
			"name":      "Maria",
			"last_name": "Gomez",
			"dni":       "30123456",
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var registerBody map[string]interface{}
	decodeBody(t, resp, &registerBody)
	assert.NotEmpty(t, registerBody["token"])
	assert.NotEmpty(t, registerBody["user_id"])
	assert.Equal(t, "maria", registerBody["username"])

	// The same username again is a conflict.
	resp = doRequest(t, app, http.MethodPost, "/api/register", "", map[string]interface{}{
		"username": "maria",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login.
	resp = doRequest(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": "maria",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginBody map[string]interface{}
	decodeBody(t, resp, &loginBody)
	token, _ := loginBody["token"].(string)
	assert.NotEmpty(t, token)

	principal, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "maria", principal.Username)

	// Wrong password.
	resp = doRequest(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"username": "maria",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Profile includes the person data.
	resp = doRequest(t, app, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var profile map[string]interface{}
	decodeBody(t, resp, &profile)
	assert.Equal(t, "maria", profile["username"])
	assert.Equal(t, "visitor", profile["role"])
	persona, ok := profile["persona"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Gomez", persona["last_name"])

	// Profile without a token.
	resp = doRequest(t, app, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestPublicCatalogProjection(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := loginAdmin(t, app)

	productID, _ := createProduct(t, app, adminToken, "Remera", 7)
	hiddenID, _ := createProduct(t, app, adminToken, "Pantalon", 3)

	// Disable the second product so only the first shows up publicly.
	resp := doRequest(t, app, http.MethodPatch, "/api/product/"+hiddenID+"/toggle_status", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// No token needed.
	resp = doRequest(t, app, http.MethodGet, "/api/product/public_catalog", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Count    int                      `json:"count"`
		Products []map[string]interface{} `json:"products"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, productID, body.Products[0]["id"])
	assert.Equal(t, true, body.Products[0]["stock_available"])
	// The exact stock figure never leaks to anonymous callers.
	assert.NotContains(t, body.Products[0], "stock")

	// The full listing stays behind authentication.
	resp = doRequest(t, app, http.MethodGet, "/api/product", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestVisitorCannotWriteCatalog(t *testing.T) {
	app, _ := setupApp(t)
	visitorToken := registerVisitor(t, app, "visitor1")

	resp := doRequest(t, app, http.MethodPost, "/api/product", visitorToken, map[string]interface{}{
		"name": "Remera", "stock": 1, "color_id": "x", "size_id": "y",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/category", visitorToken, map[string]string{"name": "Verano"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Reading the full catalog is fine for a visitor.
	resp = doRequest(t, app, http.MethodGet, "/api/product", visitorToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestStockLifecycle(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := loginAdmin(t, app)
	productID, _ := createProduct(t, app, adminToken, "Remera", 3)

	// Add 5: 3 -> 8.
	resp := doRequest(t, app, http.MethodPatch, "/api/product/"+productID+"/update_stock", adminToken,
		map[string]interface{}{"quantity": 5, "operation": "add"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail handlers.ProductDetail
	decodeBody(t, resp, &detail)
	assert.Equal(t, 8, detail.Stock)

	// Reducing by more than the stock is rejected and changes nothing.
	resp = doRequest(t, app, http.MethodPatch, "/api/product/"+productID+"/update_stock", adminToken,
		map[string]interface{}{"quantity": 10, "operation": "reduce"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/product/"+productID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &detail)
	assert.Equal(t, 8, detail.Stock)

	// Reduce to zero.
	resp = doRequest(t, app, http.MethodPatch, "/api/product/"+productID+"/update_stock", adminToken,
		map[string]interface{}{"quantity": 8, "operation": "reduce"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &detail)
	assert.Equal(t, 0, detail.Stock)
	assert.Equal(t, models.StockStatusOut, detail.StockStatus)
	assert.False(t, detail.IsAvailable)

	// An unknown operation is a validation failure.
	resp = doRequest(t, app, http.MethodPatch, "/api/product/"+productID+"/update_stock", adminToken,
		map[string]interface{}{"quantity": 1, "operation": "multiply"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStockReportsAreAdminOnly(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := loginAdmin(t, app)
	visitorToken := registerVisitor(t, app, "visitor2")

	createProduct(t, app, adminToken, "Remera", 2)
	createProduct(t, app, adminToken, "Pantalon", 0)
	createProduct(t, app, adminToken, "Zapatilla", 20)

	resp := doRequest(t, app, http.MethodGet, "/api/product/low_stock", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var low []handlers.ProductListItem
	decodeBody(t, resp, &low)
	assert.Len(t, low, 1)
	assert.Equal(t, "Remera", low[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/product/out_of_stock", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out []handlers.ProductListItem
	decodeBody(t, resp, &out)
	assert.Len(t, out, 1)
	assert.Equal(t, "Pantalon", out[0].Name)

	// Visitors are locked out of both reports.
	resp = doRequest(t, app, http.MethodGet, "/api/product/low_stock", visitorToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, http.MethodGet, "/api/product/out_of_stock", visitorToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedReferenceDelete(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := loginAdmin(t, app)
	productID, colorID := createProduct(t, app, adminToken, "Remera", 1)

	// A color in use cannot be deleted.
	resp := doRequest(t, app, http.MethodDelete, "/api/color/"+colorID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Once the product is gone the color can follow.
	resp = doRequest(t, app, http.MethodDelete, "/api/product/"+productID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/color/"+colorID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderOwnership(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := loginAdmin(t, app)
	ownerToken := registerVisitor(t, app, "owner")
	otherToken := registerVisitor(t, app, "other")

	// Orders require authentication.
	resp := doRequest(t, app, http.MethodPost, "/api/order", "", map[string]string{"total": "100.50"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/order", ownerToken, map[string]string{"total": "100.50"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.NotEmpty(t, order.ID)

	// The owner reads it, a stranger does not, the admin always can.
	resp = doRequest(t, app, http.MethodGet, "/api/order/"+order.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, http.MethodGet, "/api/order/"+order.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, http.MethodGet, "/api/order/"+order.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// my_orders only shows the requester's orders.
	resp = doRequest(t, app, http.MethodGet, "/api/order/my_orders", otherToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var mine struct {
		Count  int            `json:"count"`
		Orders []models.Order `json:"orders"`
	}
	decodeBody(t, resp, &mine)
	assert.Equal(t, 0, mine.Count)

	// Deleting is admin-only, ownership notwithstanding.
	resp = doRequest(t, app, http.MethodDelete, "/api/order/"+order.ID, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, app, http.MethodDelete, "/api/order/"+order.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestGeoEndpoints(t *testing.T) {
	app, _ := setupApp(t)
	adminToken := loginAdmin(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/geo/countries", adminToken, map[string]string{"name": "Argentina"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var country models.Country
	decodeBody(t, resp, &country)

	resp = doRequest(t, app, http.MethodPost, "/api/geo/provinces", adminToken,
		map[string]string{"name": "Buenos Aires", "country_id": country.ID})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var province models.Province
	decodeBody(t, resp, &province)

	resp = doRequest(t, app, http.MethodPost, "/api/geo/cities", adminToken,
		map[string]string{"name": "La Plata", "province_id": province.ID})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Reads are anonymous.
	resp = doRequest(t, app, http.MethodGet, "/api/geo/countries", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var countries struct {
		Count int `json:"count"`
	}
	decodeBody(t, resp, &countries)
	assert.Equal(t, 1, countries.Count)

	resp = doRequest(t, app, http.MethodGet, "/api/geo/provinces?country_id="+country.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Missing parent parameter.
	resp = doRequest(t, app, http.MethodGet, "/api/geo/provinces", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown parent.
	resp = doRequest(t, app, http.MethodGet, "/api/geo/cities?province_id=missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Writes stay admin-only.
	resp = doRequest(t, app, http.MethodPost, "/api/geo/countries", "", map[string]string{"name": "Chile"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

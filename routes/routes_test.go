package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/controllers"
	"go-shop/models"
	"go-shop/services"
	"go-shop/store"
	"go-shop/utils"
)

var testSecret = []byte("routes-test-secret")

type testEnv struct {
	router   *mux.Router
	users    *store.MemoryUserStore
	products *store.MemoryProductStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := store.NewMemoryUserStore()
	products := store.NewMemoryProductStore()
	carts := store.NewMemoryCartStore()

	authController := &controllers.AuthController{
		Svc:       &services.AuthService{Users: users},
		Users:     users,
		JWTSecret: testSecret,
	}
	productController := &controllers.ProductController{Products: products}
	cartController := &controllers.CartController{
		Svc: &services.CartService{Carts: carts, Products: products},
	}

	router := mux.NewRouter()
	RegisterRoutes(router, authController, productController, cartController, testSecret)

	return &testEnv{router: router, users: users, products: products}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(t *testing.T, name, email, password string) models.User {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64) models.Product {
	t.Helper()

	p := models.Product{Name: name, Price: price, Stock: 5}
	require.NoError(t, env.products.Create(context.Background(), &p))
	return p
}

func adminToken(t *testing.T) string {
	t.Helper()

	token, err := utils.GenerateToken(primitive.NewObjectID().Hex(), true, testSecret)
	require.NoError(t, err)
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ada", "ada@example.com", "pw")
	token := env.login(t, "ada@example.com", "pw")

	rec := env.do(t, http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ada", "ada@example.com", "pw")

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ada Again", "email": "ada@example.com", "password": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ada", "ada@example.com", "pw")

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "unknown@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCart_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ada", "ada@example.com", "pw")
	token := env.login(t, "ada@example.com", "pw")
	p1 := env.seedProduct(t, "keyboard", 30.00)
	p2 := env.seedProduct(t, "mouse", 10.00)

	// No cart before the first add.
	rec := env.do(t, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Adds merge on product id.
	rec = env.do(t, http.MethodPost, "/cart", token, map[string]interface{}{
		"product_id": p1.ID.Hex(), "quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/cart", token, map[string]interface{}{
		"product_id": p1.ID.Hex(), "quantity": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/cart", token, map[string]interface{}{
		"product_id": p2.ID.Hex(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 2)
	assert.Equal(t, p1.ID, cart.Items[0].ProductID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, p2.ID, cart.Items[1].ProductID)
	assert.Equal(t, 1, cart.Items[1].Quantity, "quantity defaults to 1")
	assert.InDelta(t, 5*30.00+10.00, cart.TotalPrice, 1e-9)

	// Remove keeps the other entry.
	rec = env.do(t, http.MethodDelete, "/cart/"+p1.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, p2.ID, cart.Items[0].ProductID)
	assert.InDelta(t, 10.00, cart.TotalPrice, 1e-9)

	// Removing an absent product is a no-op, not an error.
	rec = env.do(t, http.MethodDelete, "/cart/"+primitive.NewObjectID().Hex(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 1)
}

func TestCart_RejectsNegativeQuantity(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ada", "ada@example.com", "pw")
	token := env.login(t, "ada@example.com", "pw")
	p := env.seedProduct(t, "keyboard", 30.00)

	rec := env.do(t, http.MethodPost, "/cart", token, map[string]interface{}{
		"product_id": p.ID.Hex(), "quantity": -2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// An explicit zero is rejected too; only an absent quantity defaults to 1.
	rec = env.do(t, http.MethodPost, "/cart", token, map[string]interface{}{
		"product_id": p.ID.Hex(), "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing was created as a side effect of the rejected calls.
	rec = env.do(t, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_PublicReads(t *testing.T) {
	env := newTestEnv(t)

	p := env.seedProduct(t, "keyboard", 30.00)

	rec := env.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/products/"+p.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_AdminGate(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "Ada", "ada@example.com", "pw")
	userToken := env.login(t, "ada@example.com", "pw")

	product := map[string]interface{}{"name": "keyboard", "price": 30.00, "stock": 5}

	rec := env.do(t, http.MethodPost, "/products", "", product)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/products", userToken, product)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/products", adminToken(t), product)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = env.do(t, http.MethodPut, "/products/"+created.ID.Hex(), adminToken(t), map[string]interface{}{
		"name": "keyboard pro", "price": 45.00, "stock": 3,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/products/"+created.ID.Hex(), adminToken(t), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProtectedRoutes_RejectBadTokens(t *testing.T) {
	env := newTestEnv(t)

	expired := expiredToken(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/profile"},
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/cart"},
		{http.MethodDelete, "/cart/" + primitive.NewObjectID().Hex()},
		{http.MethodPost, "/products"},
	}

	for _, route := range protected {
		rec := env.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s without token", route.method, route.path)

		rec = env.do(t, route.method, route.path, "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with malformed token", route.method, route.path)

		rec = env.do(t, route.method, route.path, expired, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with expired token", route.method, route.path)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func expiredToken(t *testing.T) string {
	t.Helper()

	claims := utils.Claims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return raw
}

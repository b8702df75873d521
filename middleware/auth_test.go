package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/utils"
)

var testSecret = []byte("middleware-test-secret")

func protectedRouter(t *testing.T, adminOnly bool) *mux.Router {
	t.Helper()

	router := mux.NewRouter()
	sub := router.NewRoute().Subrouter()
	sub.Use(RequireAuth(testSecret))
	if adminOnly {
		sub.Use(RequireAdmin)
	}
	sub.HandleFunc("/target", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(claims.UserID))
	}).Methods("GET")
	return router
}

func doGet(router *mux.Router, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/target", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_AttachesClaims(t *testing.T) {
	t.Parallel()

	userID := primitive.NewObjectID().Hex()
	token, err := utils.GenerateToken(userID, false, testSecret)
	require.NoError(t, err)

	rec := doGet(protectedRouter(t, false), "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, rec.Body.String())
}

func TestRequireAuth_Rejections(t *testing.T) {
	t.Parallel()

	router := protectedRouter(t, false)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "no token", header: "Bearer"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doGet(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	router := protectedRouter(t, true)

	userToken, err := utils.GenerateToken(primitive.NewObjectID().Hex(), false, testSecret)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken(primitive.NewObjectID().Hex(), true, testSecret)
	require.NoError(t, err)

	rec := doGet(router, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doGet(router, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

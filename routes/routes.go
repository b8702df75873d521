package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-shop/controllers"
	"go-shop/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, authController *controllers.AuthController, productController *controllers.ProductController, cartController *controllers.CartController, jwtSecret []byte) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	router.Handle("/metrics", middleware.MetricsHandler()).Methods("GET")

	// Public routes
	router.HandleFunc("/auth/register", authController.Register).Methods("POST")
	router.HandleFunc("/auth/login", authController.Login).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Authenticated routes
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(jwtSecret))
	protected.HandleFunc("/auth/profile", authController.GetProfile).Methods("GET")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart/{product_id}", cartController.RemoveFromCart).Methods("DELETE")

	// Admin routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.RequireAuth(jwtSecret))
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"go-shop/config"
	"go-shop/controllers"
	"go-shop/logging"
	"go-shop/middleware"
	"go-shop/routes"
	"go-shop/services"
	"go-shop/store"
	"go-shop/utils"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	// Connect to MongoDB
	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := store.Connect(initCtx, cfg.MongoURI)
	if err != nil {
		cancel()
		log.Fatalf("mongo init error: %v", err)
	}
	db := client.Database(cfg.DBName)
	if err := store.EnsureIndexes(initCtx, db); err != nil {
		cancel()
		log.Fatalf("mongo index error: %v", err)
	}
	cancel()
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongo disconnect", "error", err)
		}
	}()

	// Stores
	users := store.NewMongoUserStore(db)
	products := store.NewMongoProductStore(db)
	carts := store.NewMongoCartStore(db)

	// Services and controllers
	emailService := utils.NewEmailService(cfg.SendGridKey, cfg.EmailSender)
	authController := &controllers.AuthController{
		Svc:       &services.AuthService{Users: users, Email: emailService},
		Users:     users,
		JWTSecret: cfg.JWTSecret,
	}
	productController := &controllers.ProductController{Products: products}
	cartController := &controllers.CartController{
		Svc: &services.CartService{Carts: carts, Products: products},
	}

	// Router
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics)
	routes.RegisterRoutes(router, authController, productController, cartController, cfg.JWTSecret)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
}

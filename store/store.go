// Package store defines the per-entity repositories and their MongoDB
// implementations. Handlers and services depend on the interfaces only.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
)

// UserStore persists user accounts.
type UserStore interface {
	// Create inserts a new user and fills in its ID. Returns
	// ErrDuplicateEmail if the email is already registered.
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ProductStore persists the catalog.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// PricesFor returns the unit price of each listed product that still
	// exists. Missing products are simply absent from the map.
	PricesFor(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]float64, error)
}

// CartStore persists one cart document per user.
type CartStore interface {
	// FindByUser returns ErrNotFound when the user has no cart yet.
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// Insert creates the user's cart at version 1. Returns ErrConflict if a
	// cart for the user appeared concurrently.
	Insert(ctx context.Context, cart *models.Cart) error
	// Replace writes the cart only if the stored document still carries
	// fromVersion, bumping the version on success. Returns ErrConflict when
	// a concurrent writer got there first.
	Replace(ctx context.Context, cart *models.Cart, fromVersion int64) error
}

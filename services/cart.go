package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/logging"
	"go-shop/models"
	"go-shop/store"
)

// casRetries bounds how often a lost conditional write is retried before the
// conflict is reported to the caller.
const casRetries = 3

// CartService maintains one cart per user. Mutations are read-modify-write
// cycles persisted with a compare-and-swap on the cart's version, retried on
// conflict, so concurrent edits by the same user merge instead of clobbering
// each other.
type CartService struct {
	Carts    store.CartStore
	Products store.ProductStore
}

// GetCart returns the user's cart with a freshly derived total. Returns
// store.ErrNotFound when the user has no cart; reading never creates one.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.Carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeTotal(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merges quantity into the user's cart, creating the cart on first
// use. Quantities below one are rejected.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	var lastErr error
	for attempt := 0; attempt <= casRetries; attempt++ {
		cart, err := s.Carts.FindByUser(ctx, userID)
		created := false
		switch {
		case err == nil:
		case errors.Is(err, store.ErrNotFound):
			cart = models.NewCart(userID)
			created = true
		default:
			return nil, err
		}

		cart.AddItem(productID, quantity)
		if err := s.recomputeTotal(ctx, cart); err != nil {
			return nil, err
		}

		if created {
			err = s.Carts.Insert(ctx, cart)
		} else {
			err = s.Carts.Replace(ctx, cart, cart.Version)
		}
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		lastErr = err
		l.Debug("cart write conflict, retrying", "attempt", attempt+1)
	}

	l.Warn("cart write conflict persisted", "user_id", userID.Hex())
	return nil, fmt.Errorf("cart write conflict after %d attempts: %w", casRetries+1, lastErr)
}

// RemoveItem drops every entry for productID from the user's cart. Returns
// store.ErrNotFound when the user has no cart; removing a product that is
// not in the cart succeeds and returns the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.remove")

	var lastErr error
	for attempt := 0; attempt <= casRetries; attempt++ {
		cart, err := s.Carts.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		cart.RemoveItem(productID)
		if err := s.recomputeTotal(ctx, cart); err != nil {
			return nil, err
		}

		err = s.Carts.Replace(ctx, cart, cart.Version)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		lastErr = err
		l.Debug("cart write conflict, retrying", "attempt", attempt+1)
	}

	l.Warn("cart write conflict persisted", "user_id", userID.Hex())
	return nil, fmt.Errorf("cart write conflict after %d attempts: %w", casRetries+1, lastErr)
}

func (s *CartService) recomputeTotal(ctx context.Context, cart *models.Cart) error {
	prices, err := s.Products.PricesFor(ctx, cart.ProductIDs())
	if err != nil {
		return err
	}
	cart.RecomputeTotal(prices)
	return nil
}

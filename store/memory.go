package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
)

// In-memory store implementations. They honor the same contracts as the
// Mongo ones, including duplicate detection and versioned cart writes, and
// back the handler and service tests.

type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

type MemoryProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (s *MemoryProductStore) Create(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = primitive.NewObjectID()
	s.products[product.ID] = *product
	return nil
}

func (s *MemoryProductStore) All(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	product := p
	return &product, nil
}

func (s *MemoryProductStore) Update(_ context.Context, id primitive.ObjectID, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	product.ID = id
	s.products[id] = *product
	return nil
}

func (s *MemoryProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryProductStore) PricesFor(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prices := make(map[primitive.ObjectID]float64, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			prices[id] = p.Price
		}
	}
	return prices, nil
}

type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]models.Cart // keyed by user id
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[primitive.ObjectID]models.Cart)}
}

func copyCart(c models.Cart) models.Cart {
	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

func (s *MemoryCartStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cart := copyCart(c)
	return &cart, nil
}

func (s *MemoryCartStore) Insert(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[cart.UserID]; ok {
		return ErrConflict
	}
	cart.ID = primitive.NewObjectID()
	cart.Version = 1
	s.carts[cart.UserID] = copyCart(*cart)
	return nil
}

func (s *MemoryCartStore) Replace(_ context.Context, cart *models.Cart, fromVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.carts[cart.UserID]
	if !ok || stored.Version != fromVersion {
		return ErrConflict
	}
	cart.Version = fromVersion + 1
	s.carts[cart.UserID] = copyCart(*cart)
	return nil
}

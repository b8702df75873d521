package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents one product entry in a cart.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is a user's shopping cart. There is at most one cart per user and at
// most one item entry per product; AddItem and RemoveItem keep both
// invariants. Version backs the conditional write in the cart store.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalPrice float64            `bson:"total_price" json:"total_price"`
	Version    int64              `bson:"version" json:"-"`
}

// NewCart returns an empty cart bound to the given user.
func NewCart(userID primitive.ObjectID) *Cart {
	return &Cart{
		UserID: userID,
		Items:  []CartItem{},
	}
}

// AddItem merges quantity into the existing entry for productID, or appends
// a new entry when none exists. The order of existing items is preserved;
// new items go to the end.
func (c *Cart) AddItem(productID primitive.ObjectID, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
}

// RemoveItem drops every entry for productID. Removing a product that is not
// in the cart is a no-op. A fresh slice is built rather than filtering in
// place, so callers holding the old slice never see it mutated.
func (c *Cart) RemoveItem(productID primitive.ObjectID) {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
}

// RecomputeTotal derives TotalPrice from the given unit prices. Products
// missing from the map (removed from the catalog since they were added)
// contribute nothing.
func (c *Cart) RecomputeTotal(prices map[primitive.ObjectID]float64) {
	total := 0.0
	for _, item := range c.Items {
		total += prices[item.ProductID] * float64(item.Quantity)
	}
	c.TotalPrice = total
}

// ProductIDs lists the distinct products currently in the cart.
func (c *Cart) ProductIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-shop/models"
)

// MongoCartStore is the MongoDB-backed CartStore. Writes are conditional on
// the cart's version field so interleaved read-modify-write cycles for the
// same user cannot silently overwrite each other.
type MongoCartStore struct {
	coll *mongo.Collection
}

func NewMongoCartStore(db *mongo.Database) *MongoCartStore {
	return &MongoCartStore{coll: db.Collection("carts")}
}

func (s *MongoCartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cart models.Cart
	if err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (s *MongoCartStore) Insert(ctx context.Context, cart *models.Cart) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cart.Version = 1
	res, err := s.coll.InsertOne(ctx, cart)
	if err != nil {
		// The unique user_id index trips when another request created the
		// user's cart between our read and this insert.
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return translate(err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	return nil
}

func (s *MongoCartStore) Replace(ctx context.Context, cart *models.Cart, fromVersion int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cart.Version = fromVersion + 1
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": cart.ID, "version": fromVersion}, cart)
	if err != nil {
		cart.Version = fromVersion
		return translate(err)
	}
	if res.MatchedCount == 0 {
		cart.Version = fromVersion
		return ErrConflict
	}
	return nil
}

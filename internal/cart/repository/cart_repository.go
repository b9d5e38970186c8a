package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmfresh/internal/domain"
)

type MongoCartRepository struct {
	coll *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection("carts")}
}

// Find returns the customer's cart, or an empty cart if none exists yet.
// Carts are created lazily on first add, so absence is not an error.
func (r *MongoCartRepository) Find(ctx context.Context, customerID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.coll.FindOne(ctx, bson.M{"_id": customerID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return &domain.Cart{CustomerID: customerID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cart: %w", err)
	}
	return &cart, nil
}

// UpsertItem sets the quantity for a product, inserting the cart document
// and/or the item as needed. Re-adding an existing product overwrites its
// quantity instead of duplicating the entry.
func (r *MongoCartRepository) UpsertItem(ctx context.Context, customerID, productID string, quantity int) error {
	now := time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": customerID, "items.productId": productID},
		bson.M{"$set": bson.M{"items.$.quantity": quantity, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("updating cart item: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{
			"$push": bson.M{"items": domain.CartItem{ProductID: productID, Quantity: quantity}},
			"$set":  bson.M{"updatedAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("inserting cart item: %w", err)
	}
	return nil
}

// RemoveItem pulls a product from the cart. Removing an absent product
// matches nothing and is a no-op.
func (r *MongoCartRepository) RemoveItem(ctx context.Context, customerID, productID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("removing cart item: %w", err)
	}
	return nil
}

// Clear drops every item after a successful cart checkout.
func (r *MongoCartRepository) Clear(ctx context.Context, customerID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{"$set": bson.M{"items": []domain.CartItem{}, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

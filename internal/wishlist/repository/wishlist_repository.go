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

type MongoWishlistRepository struct {
	coll *mongo.Collection
}

func NewMongoWishlistRepository(db *mongo.Database) *MongoWishlistRepository {
	return &MongoWishlistRepository{coll: db.Collection("wishlists")}
}

func (r *MongoWishlistRepository) Find(ctx context.Context, customerID string) (*domain.Wishlist, error) {
	var wishlist domain.Wishlist
	err := r.coll.FindOne(ctx, bson.M{"_id": customerID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		return &domain.Wishlist{CustomerID: customerID, ProductIDs: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying wishlist: %w", err)
	}
	return &wishlist, nil
}

// Add inserts the product id with set semantics; re-adding is a no-op.
func (r *MongoWishlistRepository) Add(ctx context.Context, customerID, productID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{
			"$addToSet": bson.M{"productIds": productID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("adding wishlist entry: %w", err)
	}
	return nil
}

// Remove pulls the product id; removing an absent product is a no-op.
func (r *MongoWishlistRepository) Remove(ctx context.Context, customerID, productID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": customerID},
		bson.M{
			"$pull": bson.M{"productIds": productID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("removing wishlist entry: %w", err)
	}
	return nil
}

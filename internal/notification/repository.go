package notification

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmfresh/internal/domain"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection("notifications")}
}

func (r *MongoRepository) Insert(ctx context.Context, n *domain.Notification) error {
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"recipientId": recipientID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []domain.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("decoding notifications: %w", err)
	}
	return notifications, nil
}

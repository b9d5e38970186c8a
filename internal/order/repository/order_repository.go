package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"farmfresh/internal/domain"
	"farmfresh/internal/errors"
)

type MongoOrderRepository struct {
	coll *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection("orders")}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return classify("inserting order", err)
	}
	return nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if err != nil {
		return nil, classify("querying order by id", err)
	}
	return &order, nil
}

// FindByStatusIn returns orders whose status is in the given set. The
// scheduler passes the non-terminal statuses so Delivered/Cancelled orders
// never leave the store.
func (r *MongoOrderRepository) FindByStatusIn(ctx context.Context, statuses []domain.Status) ([]domain.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": bson.M{"$in": statuses}})
	if err != nil {
		return nil, classify("querying orders by status", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, classify("decoding orders", err)
	}
	return orders, nil
}

// AdvanceStatus applies one transition with a compare-and-set: the write
// matches only while the persisted status still equals expected, and sets
// the new status and appends the history entry in the same update. A
// concurrent transition makes the filter miss, which surfaces as Conflict.
func (r *MongoOrderRepository) AdvanceStatus(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": expected},
		bson.M{
			"$set":  bson.M{"status": entry.Status},
			"$push": bson.M{"statusHistory": entry},
		},
	)
	if err != nil {
		return classify("updating order status", err)
	}
	if res.MatchedCount == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
		}
		return errors.NewConflictError(fmt.Sprintf("order %s no longer in status %s", id, expected))
	}
	return nil
}

func (r *MongoOrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"customerId": customerID})
	if err != nil {
		return nil, classify("querying orders by customer", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, classify("decoding orders", err)
	}
	return orders, nil
}

func (r *MongoOrderRepository) exists(ctx context.Context, id string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, classify("checking order existence", err)
	}
	return count > 0, nil
}

// classify maps driver failures onto the error taxonomy: timeouts and
// connectivity problems are transient (the next tick retries), the rest wrap
// as-is.
func classify(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || err == context.DeadlineExceeded {
		return errors.NewTransientError(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SetupTestDB connects to the test database, honoring MONGO_TEST_URI. Tests
// that need a live store skip when none is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return client.Database("farmfresh_test")
}

// CleanupTestDB empties the test collections and closes the connection.
func CleanupTestDB(t *testing.T, db *mongo.Database) {
	if db == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, coll := range []string{"orders", "carts", "wishlists", "products", "notifications"} {
		if err := db.Collection(coll).Drop(ctx); err != nil {
			t.Logf("failed to drop collection %s: %v", coll, err)
		}
	}

	if err := db.Client().Disconnect(ctx); err != nil {
		t.Logf("failed to disconnect test client: %v", err)
	}
}

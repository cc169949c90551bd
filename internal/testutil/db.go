package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultTestURI is used when MONGO_TEST_URI is unset.
const DefaultTestURI = "mongodb://localhost:27017"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		uri := strings.TrimSpace(os.Getenv("MONGO_TEST_URI"))
		if uri == "" {
			uri = DefaultTestURI
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().
			ApplyURI(uri).
			SetServerSelectionTimeout(2*time.Second))
		if err != nil {
			clientErr = err
			return
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			clientErr = err
			return
		}
		client = c
	})
	return client, clientErr
}

// SetupTestDB returns a fresh, uniquely named database that is dropped when
// the test finishes. The test is skipped when MongoDB is not reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		t.Skipf("MongoDB not available (set MONGO_TEST_URI): %v", err)
	}

	name := fmt.Sprintf("studyhub_test_%s", primitive.NewObjectID().Hex())
	db := c.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

// TestContext returns a context with a timeout suitable for a single test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

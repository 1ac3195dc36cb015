package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const backendPingTimeout = 3 * time.Second

// SetupTestPostgres opens the database named by TEST_POSTGRES_URL (default
// postgres://postgres@localhost:5432/crediario_test) and skips the test when
// it is unreachable.
func SetupTestPostgres(t *testing.T) *pgxpool.Pool {
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		url = "postgres://postgres@localhost:5432/crediario_test?sslmode=disable"
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendPingTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("failed to parse test postgres url: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("test postgres not available: %v", err)
	}

	return pool
}

// CleanupTestPostgres empties the collections table and closes the pool.
func CleanupTestPostgres(t *testing.T, pool *pgxpool.Pool) {
	if pool == nil {
		return
	}

	if _, err := pool.Exec(context.Background(), "DELETE FROM collections"); err != nil {
		t.Logf("failed to clean table collections: %v", err)
	}

	pool.Close()
}

// SetupTestMongo connects to TEST_MONGO_URI (default mongodb://localhost:27017)
// and returns the client with a database name private to the test. The test
// is skipped when no server answers.
func SetupTestMongo(t *testing.T) (*mongo.Client, string) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendPingTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(backendPingTimeout))
	if err != nil {
		t.Fatalf("failed to configure test mongo client: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("test mongo not available: %v", err)
	}

	return client, fmt.Sprintf("crediario_test_%d", time.Now().UnixNano())
}

// CleanupTestMongo drops the test database and disconnects.
func CleanupTestMongo(t *testing.T, client *mongo.Client, database string) {
	if client == nil {
		return
	}

	ctx := context.Background()
	if err := client.Database(database).Drop(ctx); err != nil {
		t.Logf("failed to drop database %s: %v", database, err)
	}

	_ = client.Disconnect(ctx)
}

// CountMongoDocuments reports how many documents collection holds under id.
func CountMongoDocuments(t *testing.T, client *mongo.Client, database, collection, id string) int64 {
	n, err := client.Database(database).Collection(collection).CountDocuments(context.Background(), bson.M{"_id": id})
	if err != nil {
		t.Fatalf("failed to count documents: %v", err)
	}
	return n
}

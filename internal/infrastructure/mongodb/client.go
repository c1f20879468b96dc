package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ColUsers      = "users"
	ColOrders     = "orders"
	ColCategories = "categories"
	ColProducts   = "products"
	ColVarieties  = "varieties"
	ColAddresses  = "addresses"
	ColCarts      = "carts"
)

// Connect opens a client, pings the deployment and returns a handle to the
// application database. The caller owns the client lifecycle via Disconnect.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the unique constraints the application relies on.
// Runs at startup, before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	specs := map[string][]mongo.IndexModel{
		ColUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: sparseUnique},
		},
		ColCategories: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		ColProducts: {
			{Keys: bson.D{{Key: "title", Value: 1}, {Key: "category", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		ColVarieties: {
			{Keys: bson.D{{Key: "product", Value: 1}}},
		},
		ColAddresses: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
		ColCarts: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique},
		},
		ColOrders: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// isDup reports whether err is a unique-index violation.
func isDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

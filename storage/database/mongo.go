// Package database opens the connections to the configured stores.
package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gurumantra/backend/core"
)

// OpenMongo connects to database.uri and returns the client together with the database.name handle.
// The caller owns the client and must Disconnect it.
func OpenMongo(ctx context.Context, conf *core.Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(conf.Database.URI).
		SetAppName(conf.AppName)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to mongodb")
	}

	pingFn := func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
	if err = ping(ctx, pingFn); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, client.Database(conf.Database.Name), nil
}

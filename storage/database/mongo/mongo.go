// Package mongorepos implements the repositories on top of a MongoDB database.
// Collection and field names match the existing mongoose-managed documents.
package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collections
const (
	UserCollection   = "users"
	CourseCollection = "courses"
	AssetCollection  = "assets"
	CreditCollection = "credit_points"
)

// creation order: createdAt then _id (ObjectIDs grow with insertion time)
var insertionOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

// EnsureIndexes creates the unique indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}); err != nil {
		return errors.Wrap(err, "creating users.email index")
	}
	if _, err := db.Collection(CourseCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("user_id"),
	}); err != nil {
		return errors.Wrap(err, "creating courses.user_id index")
	}
	if _, err := db.Collection(AssetCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("user_id"),
	}); err != nil {
		return errors.Wrap(err, "creating assets.user_id index")
	}
	if _, err := db.Collection(CreditCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	}); err != nil {
		return errors.Wrap(err, "creating credit_points.user_id index")
	}
	return nil
}

// objectID parses a hex id; ok is false for anything that is not an ObjectID.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// ownerRef is how a user id is stored in a reference field: courses keep ObjectIDs,
// other collections (and non-ObjectID ids) keep plain strings.
func ownerRef(id string) interface{} {
	if oid, ok := objectID(id); ok {
		return oid
	}
	return id
}

// refString reads back a reference written by ownerRef.
func refString(v interface{}) string {
	switch ref := v.(type) {
	case primitive.ObjectID:
		return ref.Hex()
	case string:
		return ref
	default:
		return ""
	}
}

package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gurumantra/backend/core/credit"
)

type creditDoc struct {
	UserID       string    `bson:"user_id"`
	CreditPoints int       `bson:"credit_points"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type creditRepository struct {
	col *mongo.Collection
}

var _ credit.Repository = (*creditRepository)(nil)

func NewCreditRepository(db *mongo.Database) *creditRepository {
	return &creditRepository{col: db.Collection(CreditCollection)}
}

func (repo creditRepository) GetCreditPoints(ctx context.Context, userID string) (credit.CreditPoints, error) {
	var doc creditDoc
	if err := repo.col.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return credit.CreditPoints{}, credit.ErrNotFound
		}
		return credit.CreditPoints{}, errors.Wrap(err, "finding credit points")
	}
	return credit.CreditPoints(doc), nil
}

func (repo creditRepository) TotalCreditPoints(ctx context.Context) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$credit_points"}}},
		}}},
	}
	cur, err := repo.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, errors.Wrap(err, "aggregating credit points")
	}
	defer func() { _ = cur.Close(ctx) }()

	var res []struct {
		Total int `bson:"total"`
	}
	if err = cur.All(ctx, &res); err != nil {
		return 0, errors.Wrap(err, "decoding credit points total")
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0].Total, nil
}

// SetCreditPoints upserts on user_id, so there is never more than one record per user.
func (repo creditRepository) SetCreditPoints(ctx context.Context, userID string, points int) (credit.CreditPoints, error) {
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "credit_points", Value: points}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: time.Now().UTC()}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc creditDoc
	err := repo.col.FindOneAndUpdate(ctx, bson.D{{Key: "user_id", Value: userID}}, update, opts).Decode(&doc)
	if err != nil {
		return credit.CreditPoints{}, errors.Wrap(err, "upserting credit points")
	}
	return credit.CreditPoints(doc), nil
}

package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gurumantra/backend/core/asset"
)

type assetDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Type        string             `bson:"type"`
	Filename    string             `bson:"filename"`
	FileURL     string             `bson:"file_url"`
	UserName    string             `bson:"user_name"`
	UserID      string             `bson:"user_id"`
	Desc        string             `bson:"desc"`
	ElementType string             `bson:"element_type"`
	Title       string             `bson:"title"`
	IsPrivate   bool               `bson:"is_private"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type assetRepository struct {
	col *mongo.Collection
}

var _ asset.Repository = (*assetRepository)(nil)

func NewAssetRepository(db *mongo.Database) *assetRepository {
	return &assetRepository{col: db.Collection(AssetCollection)}
}

func (repo assetRepository) fromDoc(doc assetDoc) asset.Asset {
	return asset.Asset{
		ID:          doc.ID.Hex(),
		Type:        doc.Type,
		Filename:    doc.Filename,
		FileURL:     doc.FileURL,
		UserName:    doc.UserName,
		UserID:      doc.UserID,
		Desc:        doc.Desc,
		ElementType: doc.ElementType,
		Title:       doc.Title,
		IsPrivate:   doc.IsPrivate,
		CreatedAt:   doc.CreatedAt,
	}
}

func (repo assetRepository) filter(qf asset.QueryFilter) bson.D {
	if qf.UserID == "" {
		return bson.D{}
	}
	return bson.D{{Key: "user_id", Value: qf.UserID}}
}

func (repo assetRepository) CreateAsset(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	doc := assetDoc{
		ID:          primitive.NewObjectID(),
		Type:        a.Type,
		Filename:    a.Filename,
		FileURL:     a.FileURL,
		UserName:    a.UserName,
		UserID:      a.UserID,
		Desc:        a.Desc,
		ElementType: a.ElementType,
		Title:       a.Title,
		IsPrivate:   a.IsPrivate,
		CreatedAt:   a.CreatedAt.UTC(),
	}
	if _, err := repo.col.InsertOne(ctx, doc); err != nil {
		return asset.Asset{}, errors.Wrap(err, "inserting asset")
	}
	return repo.fromDoc(doc), nil
}

func (repo assetRepository) QueryAssets(ctx context.Context, qf asset.QueryFilter) ([]asset.Asset, error) {
	cur, err := repo.col.Find(ctx, repo.filter(qf), options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, errors.Wrap(err, "querying assets")
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []assetDoc
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding assets")
	}
	assets := make([]asset.Asset, 0, len(docs))
	for _, doc := range docs {
		assets = append(assets, repo.fromDoc(doc))
	}
	return assets, nil
}

func (repo assetRepository) CountAssets(ctx context.Context, qf asset.QueryFilter) (int, error) {
	n, err := repo.col.CountDocuments(ctx, repo.filter(qf))
	if err != nil {
		return 0, errors.Wrap(err, "counting assets")
	}
	return int(n), nil
}

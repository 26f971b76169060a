package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/gurumantra/backend/core/asset"
)

type assetRepository struct {
	db *assetTable
}

var _ asset.Repository = (*assetRepository)(nil)

func NewAssetRepository(db *DB) *assetRepository {
	return &assetRepository{db: db.asset}
}

func (repo *assetRepository) CreateAsset(_ context.Context, a asset.Asset) (asset.Asset, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	a.ID = uuid.New().String()
	repo.db.rows = append(repo.db.rows, &a)
	return a, nil
}

func (repo *assetRepository) QueryAssets(_ context.Context, filter asset.QueryFilter) ([]asset.Asset, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	assets := make([]asset.Asset, 0, len(repo.db.rows))
	for _, a := range repo.db.rows {
		if filter.Match(*a) {
			assets = append(assets, *a)
		}
	}
	return assets, nil
}

func (repo *assetRepository) CountAssets(_ context.Context, filter asset.QueryFilter) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var n int
	for _, a := range repo.db.rows {
		if filter.Match(*a) {
			n++
		}
	}
	return n, nil
}

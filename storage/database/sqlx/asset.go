package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core/asset"
)

const assetColumns = `id, type, filename, file_url, user_name, user_id, "desc", element_type, title, is_private, created_at`

type assetRow struct {
	ID          string    `db:"id"`
	Type        string    `db:"type"`
	Filename    string    `db:"filename"`
	FileURL     string    `db:"file_url"`
	UserName    string    `db:"user_name"`
	UserID      string    `db:"user_id"`
	Desc        string    `db:"desc"`
	ElementType string    `db:"element_type"`
	Title       string    `db:"title"`
	IsPrivate   bool      `db:"is_private"`
	CreatedAt   time.Time `db:"created_at"`
}

type assetRepository struct {
	db *sqlx.DB
}

var _ asset.Repository = (*assetRepository)(nil)

func NewAssetRepository(db *sqlx.DB) *assetRepository {
	return &assetRepository{db: db}
}

func (repo assetRepository) where(qf asset.QueryFilter) (string, []interface{}) {
	if qf.UserID == "" {
		return "", nil
	}
	return " WHERE user_id = $1", []interface{}{qf.UserID}
}

func (repo assetRepository) CreateAsset(ctx context.Context, a asset.Asset) (asset.Asset, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.ID = uuid.New().String()
	a.CreatedAt = a.CreatedAt.UTC()

	q := `INSERT INTO asset (` + assetColumns + `) VALUES (:id, :type, :filename, :file_url, :user_name,
		:user_id, :desc, :element_type, :title, :is_private, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, assetRow(a)); err != nil {
		return asset.Asset{}, errors.Wrap(err, "inserting asset")
	}
	return a, nil
}

func (repo assetRepository) QueryAssets(ctx context.Context, qf asset.QueryFilter) ([]asset.Asset, error) {
	where, args := repo.where(qf)
	var rows []assetRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT "+assetColumns+" FROM asset"+where+" ORDER BY seq", args...); err != nil {
		return nil, errors.Wrap(err, "selecting assets")
	}
	assets := make([]asset.Asset, 0, len(rows))
	for _, r := range rows {
		a := asset.Asset(r)
		a.CreatedAt = a.CreatedAt.UTC()
		assets = append(assets, a)
	}
	return assets, nil
}

func (repo assetRepository) CountAssets(ctx context.Context, qf asset.QueryFilter) (int, error) {
	where, args := repo.where(qf)
	var n int
	if err := repo.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM asset"+where, args...); err != nil {
		return 0, errors.Wrap(err, "counting assets")
	}
	return n, nil
}

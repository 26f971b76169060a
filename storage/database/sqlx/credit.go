package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core/credit"
)

type creditRow struct {
	UserID       string    `db:"user_id"`
	CreditPoints int       `db:"credit_points"`
	CreatedAt    time.Time `db:"created_at"`
}

type creditRepository struct {
	db *sqlx.DB
}

var _ credit.Repository = (*creditRepository)(nil)

func NewCreditRepository(db *sqlx.DB) *creditRepository {
	return &creditRepository{db: db}
}

func (repo creditRepository) GetCreditPoints(ctx context.Context, userID string) (credit.CreditPoints, error) {
	var row creditRow
	err := repo.db.GetContext(ctx, &row, "SELECT user_id, credit_points, created_at FROM credit_points WHERE user_id = $1", userID)
	if err != nil {
		if isNoRows(err) {
			return credit.CreditPoints{}, credit.ErrNotFound
		}
		return credit.CreditPoints{}, errors.Wrap(err, "selecting credit points")
	}
	row.CreatedAt = row.CreatedAt.UTC()
	return credit.CreditPoints(row), nil
}

func (repo creditRepository) TotalCreditPoints(ctx context.Context) (int, error) {
	var total int
	if err := repo.db.GetContext(ctx, &total, "SELECT COALESCE(SUM(credit_points), 0) FROM credit_points"); err != nil {
		return 0, errors.Wrap(err, "summing credit points")
	}
	return total, nil
}

func (repo creditRepository) SetCreditPoints(ctx context.Context, userID string, points int) (credit.CreditPoints, error) {
	q := `INSERT INTO credit_points (user_id, credit_points, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET credit_points = EXCLUDED.credit_points
		RETURNING user_id, credit_points, created_at`
	var row creditRow
	if err := repo.db.GetContext(ctx, &row, q, userID, points, time.Now().UTC()); err != nil {
		return credit.CreditPoints{}, errors.Wrap(err, "upserting credit points")
	}
	row.CreatedAt = row.CreatedAt.UTC()
	return credit.CreditPoints(row), nil
}

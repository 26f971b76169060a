// Package credit holds the per-user credit points counter.
package credit

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("credit points not found")

type CreditPoints struct {
	UserID       string    `json:"user_id"`
	CreditPoints int       `json:"credit_points"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
}

type Repository interface {
	// GetCreditPoints returns ErrNotFound when the user has no record.
	GetCreditPoints(ctx context.Context, userID string) (CreditPoints, error)
	// TotalCreditPoints sums the points of every user.
	TotalCreditPoints(ctx context.Context) (int, error)
	// SetCreditPoints creates or overwrites the user's record; there is at most one per user.
	SetCreditPoints(ctx context.Context, userID string, points int) (CreditPoints, error)
}

// PointsOf returns the user's points, 0 when no record exists.
func PointsOf(ctx context.Context, repo Repository, userID string) (int, error) {
	cp, err := repo.GetCreditPoints(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return cp.CreditPoints, nil
}

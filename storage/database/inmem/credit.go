package inmemdb

import (
	"context"
	"time"

	"github.com/gurumantra/backend/core/credit"
)

type creditRepository struct {
	db *creditTable
}

var _ credit.Repository = (*creditRepository)(nil)

func NewCreditRepository(db *DB) *creditRepository {
	return &creditRepository{db: db.credit}
}

func (repo *creditRepository) GetCreditPoints(_ context.Context, userID string) (credit.CreditPoints, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cp, ok := repo.db.rows[userID]; ok {
		return *cp, nil
	}
	return credit.CreditPoints{}, credit.ErrNotFound
}

func (repo *creditRepository) TotalCreditPoints(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var total int
	for _, cp := range repo.db.rows {
		total += cp.CreditPoints
	}
	return total, nil
}

func (repo *creditRepository) SetCreditPoints(_ context.Context, userID string, points int) (credit.CreditPoints, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cp, ok := repo.db.rows[userID]
	if !ok {
		cp = &credit.CreditPoints{UserID: userID, CreatedAt: time.Now().UTC()}
		repo.db.rows[userID] = cp
	}
	cp.CreditPoints = points
	return *cp, nil
}

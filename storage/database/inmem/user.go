package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/gurumantra/backend/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) find(filter user.GetFilter) *user.User {
	for _, usr := range repo.db.rows {
		switch {
		case filter.ID != "":
			if usr.ID == filter.ID {
				return usr
			}
		case filter.Email != "":
			if usr.Email == filter.Email {
				return usr
			}
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.find(user.GetFilter{Email: usr.Email}) != nil {
		return user.User{}, user.ErrEmailExists
	}
	usr.ID = uuid.New().String()
	repo.db.rows = append(repo.db.rows, &usr)
	return usr, nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr := repo.find(filter); usr != nil {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, id string, patch user.Patch) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr := repo.find(user.GetFilter{ID: id})
	if usr == nil {
		return user.User{}, user.ErrNotFound
	}
	if patch.Email != nil {
		if other := repo.find(user.GetFilter{Email: *patch.Email}); other != nil && other.ID != id {
			return user.User{}, user.ErrEmailExists
		}
	}
	patch.Apply(usr)
	return *usr, nil
}

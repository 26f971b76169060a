package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid creds!")
)

type (
	Repository interface {
		// CreateUser inserts usr and returns ErrEmailExists if its email is taken.
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUser(ctx context.Context, filter GetFilter) (User, error)
		// UpdateUser applies patch to the User with the given ID and returns the updated record.
		UpdateUser(ctx context.Context, id string, patch Patch) (User, error)
	}

	ServiceInterface interface {
		Register(ctx context.Context, nu NewUser) (User, error)
		Authenticate(ctx context.Context, email, pwd string) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Update(ctx context.Context, uu UpdateUser) (User, error)
		ResetPassword(ctx context.Context, email, pwd string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	if _, err := svc.GetByEmail(ctx, nu.Email); err == nil {
		return User{}, ErrEmailExists
	} else if errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "checking email uniqueness")
	}

	usr := User{
		Username:       nu.Username,
		Email:          core.CleanString(nu.Email, true /* lower */),
		TeacherType:    nu.TeacherType,
		ProfilePicture: nu.ProfilePicture,
		CreatedAt:      time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

// Authenticate returns the User owning email if pwd matches its stored digest.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

// Update overwrites the provided fields. Moving to an email owned by another User fails with ErrEmailExists.
func (svc *Service) Update(ctx context.Context, uu UpdateUser) (User, error) {
	if uu.Email != nil {
		other, err := svc.GetByEmail(ctx, *uu.Email)
		if err == nil && other.ID != uu.UserID {
			return User{}, ErrEmailExists
		} else if err != nil && errors.Cause(err) != ErrNotFound {
			return User{}, errors.Wrap(err, "checking email uniqueness")
		}
	}

	patch := uu.Patch()
	if patch.IsEmpty() {
		return svc.GetByID(ctx, uu.UserID)
	}
	return svc.repo.UpdateUser(ctx, uu.UserID, patch)
}

func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	_, err = svc.repo.UpdateUser(ctx, usr.ID, Patch{PasswordHash: usr.PasswordHash})
	return err
}

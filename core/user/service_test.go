package user_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/gurumantra/backend/core/user"
	inmemdb "github.com/gurumantra/backend/storage/database/inmem"
	"github.com/gurumantra/backend/testutil"
)

func newService(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	return user.NewService(repo), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{Username: "awe", Email: "Awe@Test.cd", Password: "mdr", TeacherType: "school"})
	if !assert.NoError(t, err) {
		return
	}
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "awe@test.cd", usr.Email)
	assert.NotEqual(t, "mdr", string(usr.PasswordHash))
	assert.False(t, usr.CreatedAt.IsZero())

	_, err = svc.Register(ctx, user.NewUser{Username: "other", Email: "awe@test.cd", Password: "lol"})
	assert.Equal(t, user.ErrEmailExists, errors.Cause(err))
}

func TestService_Authenticate(t *testing.T) {
	svc, repo := newService(t)
	usr := testutil.CreateUser(t, repo, "awe", "awe@test.cd", "mdr")

	tests := []struct {
		name    string
		email   string
		pwd     string
		wantErr error
	}{
		{name: "unknown email", email: "lol@test.cd", pwd: "mdr", wantErr: user.ErrInvalidCredentials},
		{name: "wrong password", email: "awe@test.cd", pwd: "lol", wantErr: user.ErrInvalidCredentials},
		{name: "valid", email: "awe@test.cd", pwd: "mdr"},
		{name: "valid with mixed case email", email: " AWE@test.cd", pwd: "mdr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(context.Background(), tt.email, tt.pwd)
			if err != tt.wantErr {
				t.Errorf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.Equal(t, usr.ID, got.ID)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, repo, "awe", "awe@test.cd", "mdr")
	testutil.CreateUser(t, repo, "lol", "lol@test.cd", "mdr")

	strPtr := func(s string) *string { return &s }

	_, err := svc.Update(ctx, user.UpdateUser{UserID: "nope", Username: strPtr("x")})
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))

	_, err = svc.Update(ctx, user.UpdateUser{UserID: usr.ID, Email: strPtr("lol@test.cd")})
	assert.Equal(t, user.ErrEmailExists, errors.Cause(err))

	got, err := svc.Update(ctx, user.UpdateUser{UserID: usr.ID, Education: strPtr("B.Ed")})
	assert.NoError(t, err)
	assert.Equal(t, "B.Ed", got.Education)
	assert.Equal(t, "awe", got.Username)

	stored, err := svc.GetByID(ctx, usr.ID)
	assert.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestService_ResetPassword(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	testutil.CreateUser(t, repo, "awe", "awe@test.cd", "mdr")

	assert.Equal(t, user.ErrNotFound, errors.Cause(svc.ResetPassword(ctx, "lol@test.cd", "new")))

	assert.NoError(t, svc.ResetPassword(ctx, "awe@test.cd", "new"))
	_, err := svc.Authenticate(ctx, "awe@test.cd", "mdr")
	assert.Equal(t, user.ErrInvalidCredentials, err)
	_, err = svc.Authenticate(ctx, "awe@test.cd", "new")
	assert.NoError(t, err)
}

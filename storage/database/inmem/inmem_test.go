package inmemdb_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/credit"
	"github.com/gurumantra/backend/core/user"
	inmemdb "github.com/gurumantra/backend/storage/database/inmem"
	"github.com/gurumantra/backend/testutil"
)

func TestCourseRepository_Leaderboard(t *testing.T) {
	db := inmemdb.Open()
	users := inmemdb.NewUserRepository(db)
	courses := inmemdb.NewCourseRepository(db)
	usr := testutil.CreateUser(t, users, "awe", "awe@test.cd", "")

	testutil.CreateCourse(t, courses, usr, "three", 3, false)
	testutil.CreateCourse(t, courses, usr, "one", 1, true)
	testutil.CreateCourse(t, courses, usr, "two", 2, false)
	testutil.CreateCourse(t, courses, usr, "other one", 1, false)

	entries, err := courses.Leaderboard(context.Background())
	assert.NoError(t, err)

	var counts []int
	var titles []string
	for _, e := range entries {
		counts = append(counts, e.ChaptersCount)
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []int{3, 2, 1, 1}, counts)
	assert.Equal(t, []string{"three", "two", "one", "other one"}, titles)
}

func TestUserRepository_uniqueEmail(t *testing.T) {
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateUser(ctx, user.User{Username: "twin", Email: "twin@test.cd"})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.Equal(t, user.ErrEmailExists, err)
		}
	}
	assert.Equal(t, 1, created)

	// moving onto a taken email is refused
	other, err := repo.CreateUser(ctx, user.User{Email: "other@test.cd"})
	assert.NoError(t, err)
	email := "twin@test.cd"
	_, err = repo.UpdateUser(ctx, other.ID, user.Patch{Email: &email})
	assert.Equal(t, user.ErrEmailExists, err)
}

func TestCreditRepository(t *testing.T) {
	repo := inmemdb.NewCreditRepository(inmemdb.Open())
	ctx := context.Background()

	_, err := repo.GetCreditPoints(ctx, "1")
	assert.Equal(t, credit.ErrNotFound, err)
	points, err := credit.PointsOf(ctx, repo, "1")
	assert.NoError(t, err)
	assert.Equal(t, 0, points)

	first, err := repo.SetCreditPoints(ctx, "1", 10)
	assert.NoError(t, err)
	second, err := repo.SetCreditPoints(ctx, "1", 25)
	assert.NoError(t, err)
	assert.Equal(t, 25, second.CreditPoints)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	_, _ = repo.SetCreditPoints(ctx, "2", 5)
	total, err := repo.TotalCreditPoints(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 30, total)
}

func TestDB_Reset(t *testing.T) {
	db := inmemdb.Open()
	courses := inmemdb.NewCourseRepository(db)
	usr := testutil.CreateUser(t, inmemdb.NewUserRepository(db), "awe", "awe@test.cd", "")
	testutil.CreateCourse(t, courses, usr, "Algebra", 1, true)

	db.Reset()

	n, err := courses.CountCourses(context.Background(), course.QueryFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	_, err = inmemdb.NewUserRepository(db).GetUser(context.Background(), user.GetFilter{ID: usr.ID})
	assert.Equal(t, user.ErrNotFound, err)
}

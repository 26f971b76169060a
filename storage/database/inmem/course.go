package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/gurumantra/backend/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.course}
}

// clone copies c so callers never share the stored chapters slice.
func clone(c course.Course) course.Course {
	chapters := make([]course.Block, len(c.Chapters))
	copy(chapters, c.Chapters)
	c.Chapters = chapters
	return c
}

func (repo *courseRepository) query(filter course.QueryFilter) []course.Course {
	courses := make([]course.Course, 0, len(repo.db.rows))
	for _, c := range repo.db.rows {
		if filter.Match(*c) {
			courses = append(courses, clone(*c))
		}
	}
	return courses
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c.ID = uuid.New().String()
	c = clone(c)
	repo.db.rows = append(repo.db.rows, &c)
	return clone(c), nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(filter), nil
}

func (repo *courseRepository) CountCourses(_ context.Context, filter course.QueryFilter) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var n int
	for _, c := range repo.db.rows {
		if filter.Match(*c) {
			n++
		}
	}
	return n, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, c := range repo.db.rows {
		if c.ID == id {
			return clone(*c), nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateChapters(_ context.Context, id string, chapters []course.Block, published *bool) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, c := range repo.db.rows {
		if c.ID != id {
			continue
		}
		c.Chapters = make([]course.Block, len(chapters))
		copy(c.Chapters, chapters)
		if published != nil {
			c.IsPublished = *published
		}
		return clone(*c), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) Leaderboard(_ context.Context) ([]course.LeaderboardEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return course.RankByChapters(repo.query(course.QueryFilter{})), nil
}

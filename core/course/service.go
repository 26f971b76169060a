package course

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		// QueryCourses returns the matching courses in creation order.
		QueryCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		CountCourses(ctx context.Context, filter QueryFilter) (int, error)
		GetCourse(ctx context.Context, id string) (Course, error)
		// UpdateChapters replaces the chapters (and the published flag when set) and returns the updated course.
		UpdateChapters(ctx context.Context, id string, chapters []Block, published *bool) (Course, error)
		// Leaderboard returns every course ranked by chapters count, descending, ties in creation order.
		Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, nc NewCourse) (Course, error)
		Query(ctx context.Context, filter QueryFilter) ([]Course, error)
		Get(ctx context.Context, id string) (Course, error)
		Save(ctx context.Context, id string, sc SaveChapters) (Course, error)
		Publish(ctx context.Context, id string, pc PublishCourse) (Course, error)
		Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	c := Course{
		UserID:    nc.UserID,
		Username:  nc.Username,
		Title:     nc.Title,
		Chapters:  []Block{},
		CreatedAt: time.Now().UTC(),
	}
	c, err := svc.repo.CreateCourse(ctx, c)
	if err != nil {
		return Course{}, errors.Wrap(err, "inserting course")
	}
	return normalize(c), nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Course, error) {
	courses, err := svc.repo.QueryCourses(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		return []Course{}, nil
	}
	for i := range courses {
		courses[i] = normalize(courses[i])
	}
	return courses, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Course, error) {
	c, err := svc.repo.GetCourse(ctx, id)
	if err != nil {
		return Course{}, err
	}
	return normalize(c), nil
}

// Save replaces the chapters sequence wholesale.
func (svc *Service) Save(ctx context.Context, id string, sc SaveChapters) (Course, error) {
	c, err := svc.repo.UpdateChapters(ctx, id, sc.Chapters, nil)
	if err != nil {
		return Course{}, err
	}
	return normalize(c), nil
}

// Publish replaces the chapters sequence and sets the published flag in the same write.
func (svc *Service) Publish(ctx context.Context, id string, pc PublishCourse) (Course, error) {
	published := pc.Published()
	c, err := svc.repo.UpdateChapters(ctx, id, pc.Chapters, &published)
	if err != nil {
		return Course{}, err
	}
	return normalize(c), nil
}

func (svc *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	entries, err := svc.repo.Leaderboard(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "ranking courses")
	}
	if entries == nil {
		return []LeaderboardEntry{}, nil
	}
	for i := range entries {
		if entries[i].Chapters == nil {
			entries[i].Chapters = []Block{}
		}
	}
	return entries, nil
}

// normalize guarantees chapters is never null on the wire.
func normalize(c Course) Course {
	if c.Chapters == nil {
		c.Chapters = []Block{}
	}
	return c
}

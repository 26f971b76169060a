package sqlxrepos

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core/course"
)

const courseColumns = "id, user_id, username, title, is_published, chapters, created_at"

type courseRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Username    string    `db:"username"`
	Title       string    `db:"title"`
	IsPublished bool      `db:"is_published"`
	Chapters    blocks    `db:"chapters"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r courseRow) course() course.Course {
	return course.Course{
		ID:          r.ID,
		UserID:      r.UserID,
		Username:    r.Username,
		Title:       r.Title,
		IsPublished: r.IsPublished,
		Chapters:    r.Chapters,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type leaderboardRow struct {
	UserID        string    `db:"user_id"`
	Username      string    `db:"username"`
	ChaptersCount int       `db:"chapters_count"`
	Chapters      blocks    `db:"chapters"`
	Title         string    `db:"title"`
	IsPublished   bool      `db:"is_published"`
	CreatedAt     time.Time `db:"created_at"`
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) where(qf course.QueryFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if qf.UserID != "" {
		args = append(args, qf.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}
	if qf.PublishedOnly {
		conds = append(conds, "is_published")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (repo courseRepository) CreateCourse(ctx context.Context, c course.Course) (course.Course, error) {
	row := courseRow{
		ID:          uuid.New().String(),
		UserID:      c.UserID,
		Username:    c.Username,
		Title:       c.Title,
		IsPublished: c.IsPublished,
		Chapters:    c.Chapters,
		CreatedAt:   c.CreatedAt.UTC(),
	}
	q := `INSERT INTO course (` + courseColumns + `)
		VALUES (:id, :user_id, :username, :title, :is_published, :chapters, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.course(), nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, qf course.QueryFilter) ([]course.Course, error) {
	where, args := repo.where(qf)
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT "+courseColumns+" FROM course"+where+" ORDER BY seq", args...); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.course())
	}
	return courses, nil
}

func (repo courseRepository) CountCourses(ctx context.Context, qf course.QueryFilter) (int, error) {
	where, args := repo.where(qf)
	var n int
	if err := repo.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM course"+where, args...); err != nil {
		return 0, errors.Wrap(err, "counting courses")
	}
	return n, nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id string) (course.Course, error) {
	if !validID(id) {
		return course.Course{}, course.ErrNotFound
	}
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, "SELECT "+courseColumns+" FROM course WHERE id = $1", id); err != nil {
		if isNoRows(err) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "selecting course")
	}
	return row.course(), nil
}

func (repo courseRepository) UpdateChapters(ctx context.Context, id string, chapters []course.Block, published *bool) (course.Course, error) {
	if !validID(id) {
		return course.Course{}, course.ErrNotFound
	}

	var (
		row courseRow
		err error
	)
	if published == nil {
		err = repo.db.GetContext(ctx, &row,
			"UPDATE course SET chapters = $1 WHERE id = $2 RETURNING "+courseColumns, blocks(chapters), id)
	} else {
		err = repo.db.GetContext(ctx, &row,
			"UPDATE course SET chapters = $1, is_published = $2 WHERE id = $3 RETURNING "+courseColumns,
			blocks(chapters), *published, id)
	}
	if err != nil {
		if isNoRows(err) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "updating course chapters")
	}
	return row.course(), nil
}

func (repo courseRepository) Leaderboard(ctx context.Context) ([]course.LeaderboardEntry, error) {
	q := `SELECT user_id, username, jsonb_array_length(chapters) AS chapters_count, chapters, title, is_published, created_at
		FROM course ORDER BY chapters_count DESC, seq`
	var rows []leaderboardRow
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "ranking courses")
	}
	entries := make([]course.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, course.LeaderboardEntry{
			UserID:        r.UserID,
			Username:      r.Username,
			ChaptersCount: r.ChaptersCount,
			Chapters:      r.Chapters,
			Title:         r.Title,
			IsPublished:   r.IsPublished,
			CreatedAt:     r.CreatedAt.UTC(),
		})
	}
	return entries, nil
}

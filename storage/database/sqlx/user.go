package sqlxrepos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core/user"
)

const userColumns = `id, username, password_hash, teacher_type, profile_picture, email, doc_url, aadhar_card_url,
	mark_sheet_url, cert_url, is_verified, education, major, graduation_year, created_at`

type userRow struct {
	ID             string    `db:"id"`
	Username       string    `db:"username"`
	PasswordHash   []byte    `db:"password_hash"`
	TeacherType    string    `db:"teacher_type"`
	ProfilePicture string    `db:"profile_picture"`
	Email          string    `db:"email"`
	DocURL         string    `db:"doc_url"`
	AadharCardURL  string    `db:"aadhar_card_url"`
	MarkSheetURL   string    `db:"mark_sheet_url"`
	CertURL        string    `db:"cert_url"`
	IsVerified     bool      `db:"is_verified"`
	Education      string    `db:"education"`
	Major          string    `db:"major"`
	GraduationYear string    `db:"graduation_year"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r userRow) user() user.User {
	return user.User{
		ID:             r.ID,
		Username:       r.Username,
		PasswordHash:   r.PasswordHash,
		TeacherType:    r.TeacherType,
		ProfilePicture: r.ProfilePicture,
		Email:          r.Email,
		DocURL:         r.DocURL,
		AadharCardURL:  r.AadharCardURL,
		MarkSheetURL:   r.MarkSheetURL,
		CertURL:        r.CertURL,
		IsVerified:     r.IsVerified,
		Education:      r.Education,
		Major:          r.Major,
		GraduationYear: r.GraduationYear,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) trapErr(err error, msg string) error {
	switch {
	case isNoRows(err):
		return user.ErrNotFound
	case isUniqueViolation(err):
		return user.ErrEmailExists
	default:
		return errors.Wrap(err, msg)
	}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := userRow{
		ID:             uuid.New().String(),
		Username:       usr.Username,
		PasswordHash:   usr.PasswordHash,
		TeacherType:    usr.TeacherType,
		ProfilePicture: usr.ProfilePicture,
		Email:          usr.Email,
		DocURL:         usr.DocURL,
		AadharCardURL:  usr.AadharCardURL,
		MarkSheetURL:   usr.MarkSheetURL,
		CertURL:        usr.CertURL,
		IsVerified:     usr.IsVerified,
		Education:      usr.Education,
		Major:          usr.Major,
		GraduationYear: usr.GraduationYear,
		CreatedAt:      usr.CreatedAt.UTC(),
	}
	q := `INSERT INTO "user" (` + userColumns + `) VALUES (:id, :username, :password_hash, :teacher_type,
		:profile_picture, :email, :doc_url, :aadhar_card_url, :mark_sheet_url, :cert_url, :is_verified,
		:education, :major, :graduation_year, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return user.User{}, repo.trapErr(err, "inserting user")
	}
	return row.user(), nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var (
		where string
		arg   string
	)
	switch {
	case filter.ID != "":
		if !validID(filter.ID) {
			return user.User{}, user.ErrNotFound
		}
		where, arg = "id = $1", filter.ID
	case filter.Email != "":
		where, arg = "email = $1", filter.Email
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM "user" WHERE `+where, arg); err != nil {
		return user.User{}, repo.trapErr(err, "selecting user")
	}
	return row.user(), nil
}

// UpdateUser writes the patched columns and reads the row back in the same statement.
func (repo userRepository) UpdateUser(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	if !validID(id) {
		return user.User{}, user.ErrNotFound
	}

	var (
		sets []string
		args []interface{}
	)
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	strCols := []struct {
		col string
		val *string
	}{
		{"username", patch.Username},
		{"email", patch.Email},
		{"aadhar_card_url", patch.AadharCardURL},
		{"mark_sheet_url", patch.MarkSheetURL},
		{"cert_url", patch.CertURL},
		{"education", patch.Education},
		{"major", patch.Major},
		{"graduation_year", patch.GraduationYear},
	}
	for _, c := range strCols {
		if c.val != nil {
			set(c.col, *c.val)
		}
	}
	if patch.IsVerified != nil {
		set("is_verified", *patch.IsVerified)
	}
	if patch.PasswordHash != nil {
		set("password_hash", patch.PasswordHash)
	}
	if len(sets) == 0 {
		return repo.GetUser(ctx, user.GetFilter{ID: id})
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE "user" SET %s WHERE id = $%d RETURNING %s`, strings.Join(sets, ", "), len(args), userColumns)

	var row userRow
	if err := repo.db.GetContext(ctx, &row, q, args...); err != nil {
		return user.User{}, repo.trapErr(err, "updating user")
	}
	return row.user(), nil
}

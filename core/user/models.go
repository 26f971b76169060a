package user

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/gurumantra/backend/core"
)

// User is a teacher account. Email is the natural key.
type User struct {
	ID             string    `json:"_id"`
	Username       string    `json:"username"`
	PasswordHash   []byte    `json:"-"`
	TeacherType    string    `json:"teacher_type"`
	ProfilePicture string    `json:"profile_picture"`
	Email          string    `json:"email"`
	DocURL         string    `json:"doc_url"`
	AadharCardURL  string    `json:"aadhar_card_url"`
	MarkSheetURL   string    `json:"mark_sheet_url"`
	CertURL        string    `json:"cert_url"`
	IsVerified     bool      `json:"is_verified"`
	Education      string    `json:"education"`
	Major          string    `json:"major"`
	GraduationYear string    `json:"graduation_year"`
	CreatedAt      time.Time `json:"createdAt"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username       string `json:"username" form:"username"`
	Email          string `json:"email" form:"email" validate:"required,email"`
	Password       string `json:"password" form:"password" validate:"required"`
	TeacherType    string `json:"teacher_type" form:"teacher_type"`
	ProfilePicture string `json:"profile_picture" form:"profile_picture"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.TeacherType = core.CleanString(nu.TeacherType)
	return validate.Struct(nu)
}

// Credentials are used to authenticate a User.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return validate.Struct(c)
}

// UpdateUser defines what information may be provided to modify an existing User.
// nil fields are left untouched.
type UpdateUser struct {
	UserID         string  `json:"user_id" validate:"required"`
	Username       *string `json:"username"`
	Email          *string `json:"email" validate:"omitempty,email"`
	AadharCardURL  *string `json:"aadhar_card_url"`
	MarkSheetURL   *string `json:"mark_sheet_url"`
	CertURL        *string `json:"cert_url"`
	IsVerified     *bool   `json:"is_verified"`
	Education      *string `json:"education"`
	Major          *string `json:"major"`
	GraduationYear *Year   `json:"graduation_year"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.UserID = core.CleanString(uu.UserID)
	if uu.Email != nil {
		email := core.CleanString(*uu.Email, true /* lower */)
		uu.Email = &email
	}
	return validate.Struct(uu)
}

// Patch returns the storage-level changes described by uu.
func (uu UpdateUser) Patch() Patch {
	p := Patch{
		Username:      uu.Username,
		Email:         uu.Email,
		AadharCardURL: uu.AadharCardURL,
		MarkSheetURL:  uu.MarkSheetURL,
		CertURL:       uu.CertURL,
		IsVerified:    uu.IsVerified,
		Education:     uu.Education,
		Major:         uu.Major,
	}
	if uu.GraduationYear != nil {
		year := string(*uu.GraduationYear)
		p.GraduationYear = &year
	}
	return p
}

// Patch is a partial update of a stored User; only non-nil fields are written.
type Patch struct {
	Username       *string
	Email          *string
	PasswordHash   []byte
	AadharCardURL  *string
	MarkSheetURL   *string
	CertURL        *string
	IsVerified     *bool
	Education      *string
	Major          *string
	GraduationYear *string
}

func (p Patch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil && p.AadharCardURL == nil &&
		p.MarkSheetURL == nil && p.CertURL == nil && p.IsVerified == nil && p.Education == nil &&
		p.Major == nil && p.GraduationYear == nil
}

// Apply writes the set fields of p onto usr.
func (p Patch) Apply(usr *User) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&usr.Username, p.Username)
	setStr(&usr.Email, p.Email)
	setStr(&usr.AadharCardURL, p.AadharCardURL)
	setStr(&usr.MarkSheetURL, p.MarkSheetURL)
	setStr(&usr.CertURL, p.CertURL)
	setStr(&usr.Education, p.Education)
	setStr(&usr.Major, p.Major)
	setStr(&usr.GraduationYear, p.GraduationYear)
	if p.IsVerified != nil {
		usr.IsVerified = *p.IsVerified
	}
	if p.PasswordHash != nil {
		usr.PasswordHash = p.PasswordHash
	}
}

// Year accepts both `"2021"` and `2021` in JSON payloads.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(core.CleanString(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	*y = Year(n.String())
	return nil
}

type GetFilter struct {
	ID    string
	Email string
}

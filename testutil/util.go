// Package testutil holds fixtures shared by the tests of several packages.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gurumantra/backend/apps/api/di"
	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/user"
)

// Config returns an in-memory, test-mode configuration writing uploads to a temp dir.
func Config(t *testing.T) *core.Config {
	return &core.Config{
		Env:      "TEST",
		Build:    "test",
		AppName:  "Guru Mantra",
		TestMode: true,
		WorkDir:  core.Getwd(),
		Server: core.ServerConfig{
			Port:            "0",
			ShutdownTimeout: time.Second,
			BodyLimit:       "50M",
			AllowOrigins:    []string{"*"},
		},
		Database: core.DatabaseConfig{Engine: core.EngineMemory},
		Uploads: core.UploadsConfig{
			Engine:    core.UploadDisk,
			Dir:       t.TempDir(),
			MountPath: "/uploads",
		},
		Mail: core.MailConfig{
			DefaultFromEmail: "noreply@test.local",
			DefaultFromName:  "Guru Mantra",
			Recipients:       []string{"Teacher One <one@test.local>", "two@test.local"},
		},
	}
}

func NewValidator() (*validator.Validate, ut.Translator) {
	translator := di.NewTranslator()
	return di.NewValidator(translator), translator
}

func CreateUser(t *testing.T, repo user.Repository, uname, email, pwd string, createdAt ...time.Time) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Username:    uname,
		Email:       email,
		TeacherType: "school",
		CreatedAt:   tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// Blocks returns n valid text blocks, tagged with prefix.
func Blocks(prefix string, n int) []course.Block {
	blocks := make([]course.Block, 0, n)
	for i := 0; i < n; i++ {
		blocks = append(blocks, course.Block{
			Type:      course.BlockHeading,
			ElementID: fmt.Sprintf("%s-%d", prefix, i),
			Index:     i,
			Text:      fmt.Sprintf("%s heading %d", prefix, i),
		})
	}
	return blocks
}

func CreateCourse(t *testing.T, repo course.Repository, usr user.User, title string, chapters int, published bool) course.Course {
	c, err := repo.CreateCourse(context.Background(), course.Course{
		UserID:      usr.ID,
		Username:    usr.Username,
		Title:       title,
		IsPublished: published,
		Chapters:    Blocks(title, chapters),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

package core

import (
	"net/mail"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_MailRecipients(t *testing.T) {
	conf := Config{Mail: MailConfig{Recipients: []string{"One <one@test.local>", " two@test.local ", "", "not an address"}}}
	assert.Equal(t, []mail.Address{
		{Name: "One", Address: "one@test.local"},
		{Address: "two@test.local"},
	}, conf.MailRecipients())
}

func TestConfig_UploadsDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "up")

	conf := Config{WorkDir: "/srv/app", Uploads: UploadsConfig{Dir: "uploads"}}
	assert.Equal(t, filepath.Join("/srv/app", "uploads"), conf.UploadsDir())

	conf.Uploads.Dir = abs
	assert.Equal(t, abs, conf.UploadsDir())
}

func Test_splitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " ", "c,"}))
	assert.Equal(t, []string{}, splitList(nil))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Awe", CleanString("  Awe \n"))
	assert.Equal(t, "awe@test.cd", CleanString(" AWE@Test.cd", true))
}

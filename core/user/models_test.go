package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYear_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Year
		wantErr bool
	}{
		{name: "string", data: `"2019"`, want: "2019"},
		{name: "padded string", data: `" 2019 "`, want: "2019"},
		{name: "number", data: `2019`, want: "2019"},
		{name: "invalid", data: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y Year
			err := json.Unmarshal([]byte(tt.data), &y)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, y)
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	uname, major := "awesome", "Maths"
	verified := true
	year := Year("2019")

	usr := User{Username: "awe", Email: "awe@test.cd", Education: "B.Ed", Major: "Physics"}
	patch := UpdateUser{UserID: "1", Username: &uname, Major: &major, IsVerified: &verified, GraduationYear: &year}.Patch()
	assert.False(t, patch.IsEmpty())

	patch.Apply(&usr)
	assert.Equal(t, User{
		Username:       "awesome",
		Email:          "awe@test.cd",
		Education:      "B.Ed",
		Major:          "Maths",
		IsVerified:     true,
		GraduationYear: "2019",
	}, usr)

	assert.True(t, UpdateUser{UserID: "1"}.Patch().IsEmpty())
}

func TestUser_MarshalJSON_hidesPassword(t *testing.T) {
	usr := User{ID: "1", Email: "awe@test.cd"}
	_ = usr.SetPassword("mdr")

	data, err := json.Marshal(usr)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), string(usr.PasswordHash))
	assert.NoError(t, usr.CheckPassword("mdr"))
	assert.Error(t, usr.CheckPassword("lol"))
}

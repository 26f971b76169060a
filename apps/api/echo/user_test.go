package echoapi

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gurumantra/backend/core/user"
	"github.com/gurumantra/backend/testutil"
)

func Test_userApi_register(t *testing.T) {
	app, deps := setup(t)

	existing := testutil.CreateUser(t, deps.usrRepo, "awe", "awe@test.cd", "mdr")

	tests := []httpTest{
		{
			name:     "empty body",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Bad Request",
				Fields:  map[string]string{"email": "this field is required", "password": "this field is required"},
			}),
		},
		{
			name:     "invalid email",
			body:     []byte(`{"username": "lol", "email": "lol", "password": "pwd"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Bad Request",
				Fields:  map[string]string{"email": "must be a valid email address"},
			}),
		},
		{
			name:     "email exists",
			body:     []byte(`{"username": "other", "email": " AWE@test.cd ", "password": "pwd"}`),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Message: "email already exists"}),
		},
		{
			name:     "register",
			body:     []byte(`{"username": "jdoe", "email": "JDoe@Test.cd", "password": "s3cret", "teacher_type": "college", "profile_picture": "https://cdn.test/p.png"}`),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/register", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			assert.Equal(t, tt.wantCode, rec.Code)

			var got map[string]interface{}
			decode(t, rec, &got)
			assert.NotEmpty(t, got["_id"])
			assert.Equal(t, "jdoe", got["username"])
			assert.Equal(t, "jdoe@test.cd", got["email"])
			assert.Equal(t, "college", got["teacher_type"])
			assert.Equal(t, "https://cdn.test/p.png", got["profile_picture"])
			assert.NotContains(t, got, "password")
			assert.NotContains(t, got, "PasswordHash")

			// stored password is a digest, never the plaintext
			usr, err := deps.usrRepo.GetUser(context.Background(), user.GetFilter{Email: "jdoe@test.cd"})
			if assert.NoError(t, err) {
				assert.NotEqual(t, "s3cret", string(usr.PasswordHash))
				assert.NoError(t, usr.CheckPassword("s3cret"))
			}
		})
	}

	// existing user untouched
	usr, err := deps.usrRepo.GetUser(context.Background(), user.GetFilter{ID: existing.ID})
	assert.NoError(t, err)
	assert.Equal(t, "awe", usr.Username)
}

func Test_userApi_register_concurrent(t *testing.T) {
	app, _ := setup(t)

	body := []byte(`{"username": "twin", "email": "twin@test.cd", "password": "pwd"}`)
	codes := make([]int, 2)

	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, rec := newRequest(http.MethodPost, "/register", body)
			app.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes)
}

func Test_userApi_register_multipart(t *testing.T) {
	app, deps := setup(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("username", "pic")
	_ = w.WriteField("email", "pic@test.cd")
	_ = w.WriteField("password", "pwd")
	fw, err := w.CreateFormFile("profile_picture", "me.png")
	if err != nil {
		t.Fatalf("CreateFormFile() failed: %v", err)
	}
	_, _ = fw.Write([]byte("png bytes"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/register", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	if !assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String()) {
		return
	}
	var got user.User
	decode(t, rec, &got)
	assert.True(t, strings.HasPrefix(got.ProfilePicture, "/uploads/"), got.ProfilePicture)
	assert.True(t, strings.HasSuffix(got.ProfilePicture, "-me.png"), got.ProfilePicture)

	content, err := os.ReadFile(filepath.Join(deps.conf.UploadsDir(), strings.TrimPrefix(got.ProfilePicture, "/uploads/")))
	if assert.NoError(t, err) {
		assert.Equal(t, "png bytes", string(content))
	}

	// uploaded files are served back
	req, rec = newRequest(http.MethodGet, got.ProfilePicture)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png bytes", rec.Body.String())
}

func Test_userApi_login(t *testing.T) {
	app, deps := setup(t)

	usr := testutil.CreateUser(t, deps.usrRepo, "awe", "awe@test.cd", "mdr")
	invalidCreds := marchallObj(t, httpErr{Message: "invalid creds!"})

	tests := []httpTest{
		{name: "empty body", body: []byte("{}"), wantCode: http.StatusUnauthorized, wantData: invalidCreds},
		{name: "unknown email", body: []byte(`{"email": "lol@test.cd", "password": "mdr"}`), wantCode: http.StatusUnauthorized, wantData: invalidCreds},
		{name: "wrong password", body: []byte(`{"email": "awe@test.cd", "password": "lol"}`), wantCode: http.StatusUnauthorized, wantData: invalidCreds},
		{name: "login", body: []byte(`{"email": "awe@test.cd", "password": "mdr"}`), wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
		{name: "login with mixed case email", body: []byte(`{"email": "Awe@Test.cd", "password": "mdr"}`), wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_edit(t *testing.T) {
	app, deps := setup(t)

	usr := testutil.CreateUser(t, deps.usrRepo, "awe", "awe@test.cd", "mdr")
	other := testutil.CreateUser(t, deps.usrRepo, "other", "other@test.cd", "mdr")

	edited := usr
	edited.Education = "B.Ed"
	edited.Major = "Maths"
	edited.GraduationYear = "2019"
	edited.IsVerified = true

	renamed := edited
	renamed.Username = "awesome"
	renamed.Email = "awesome@test.cd"

	tests := []httpTest{
		{
			name:     "missing user_id",
			body:     []byte(`{"username": "lol"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Bad Request", Fields: map[string]string{"user_id": "this field is required"}}),
		},
		{
			name:     "unknown user",
			body:     []byte(`{"user_id": "lol", "username": "lol"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "user not found"}),
		},
		{
			name:     "email of another user",
			body:     marchallObj(t, map[string]string{"user_id": usr.ID, "email": other.Email}),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Message: "email already exists"}),
		},
		{
			name:     "nothing to change",
			body:     marchallObj(t, map[string]string{"user_id": usr.ID}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, usr),
		},
		{
			name:     "partial update",
			body:     marchallObj(t, map[string]interface{}{"user_id": usr.ID, "education": "B.Ed", "major": "Maths", "graduation_year": 2019, "is_verified": true}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, edited),
		},
		{
			name:     "rename, other fields kept",
			body:     marchallObj(t, map[string]string{"user_id": usr.ID, "username": "awesome", "email": "Awesome@test.cd"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, renamed),
		},
		{
			name:     "own email again",
			body:     marchallObj(t, map[string]string{"user_id": usr.ID, "email": "awesome@test.cd"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, renamed),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPut, "/edit", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

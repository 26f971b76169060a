package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/testutil"
)

func Test_courseApi_create(t *testing.T) {
	app, deps := setup(t)

	usr := testutil.CreateUser(t, deps.usrRepo, "awe", "awe@test.cd", "mdr")

	tests := []httpTest{
		{
			name:     "missing user_id",
			body:     []byte(`{"title": "Algebra"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Bad Request", Fields: map[string]string{"user_id": "this field is required"}}),
		},
		{
			name:     "blank user_id",
			body:     []byte(`{"title": "Algebra", "user_id": "   "}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Bad Request", Fields: map[string]string{"user_id": "this field is required"}}),
		},
		{
			name:     "create",
			body:     marchallObj(t, map[string]string{"title": " Algebra ", "user_id": usr.ID, "username": usr.Username}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/courses", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
				return
			}
			assert.Equal(t, tt.wantCode, rec.Code)

			var got map[string]interface{}
			decode(t, rec, &got)
			assert.NotEmpty(t, got["_id"])
			assert.Equal(t, "Algebra", got["title"])
			assert.Equal(t, usr.ID, got["user_id"])
			assert.Equal(t, "awe", got["username"])
			assert.Equal(t, false, got["is_published"])
			assert.Equal(t, []interface{}{}, got["chapters"])
			assert.NotEmpty(t, got["createdAt"])
		})
	}

	// exactly one course stored
	n, err := deps.courseRepo.CountCourses(context.Background(), course.QueryFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

func Test_courseApi_query(t *testing.T) {
	app, deps := setup(t)

	usr1 := testutil.CreateUser(t, deps.usrRepo, "awe", "awe@test.cd", "mdr")
	usr2 := testutil.CreateUser(t, deps.usrRepo, "lol", "lol@test.cd", "mdr")
	c1 := testutil.CreateCourse(t, deps.courseRepo, usr1, "Algebra", 2, true)
	c2 := testutil.CreateCourse(t, deps.courseRepo, usr1, "Geometry", 0, false)
	c3 := testutil.CreateCourse(t, deps.courseRepo, usr2, "Physics", 1, true)

	tests := []httpTest{
		{name: "published only", path: "/courses", wantCode: http.StatusOK, wantData: marchallList(t, c1, c3)},
		{name: "all", path: "/courses?all=true", wantCode: http.StatusOK, wantData: marchallList(t, c1, c2, c3)},
		{name: "by owner", path: "/user/" + usr1.ID + "/courses", wantCode: http.StatusOK, wantData: marchallList(t, c1, c2)},
		{name: "by other owner", path: "/user/" + usr2.ID + "/courses", wantCode: http.StatusOK, wantData: marchallList(t, c3)},
		{name: "owner without courses", path: "/user/nobody/courses", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "retrieve", path: "/courses/" + c2.ID, wantCode: http.StatusOK, wantData: marchallObj(t, c2)},
		{name: "retrieve with trailing slash", path: "/courses/" + c2.ID + "/", wantCode: http.StatusOK, wantData: marchallObj(t, c2)},
		{name: "retrieve unknown", path: "/courses/lol", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "course not found"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_courseApi_save(t *testing.T) {
	app, deps := setup(t)

	usr := testutil.CreateUser(t, deps.usrRepo, "awe", "awe@test.cd", "mdr")
	c := testutil.CreateCourse(t, deps.courseRepo, usr, "Algebra", 0, false)

	chapters := []course.Block{
		{Type: course.BlockSectionTitle, ElementID: "A", Index: 0, Text: "Intro"},
		{Type: course.BlockImage, ElementID: "B", Index: 1, AssetID: "asset-1"},
		{Type: course.BlockDesc, ElementID: "C", Index: 2},
	}
	saved := c
	saved.Chapters = chapters

	tests := []httpTest{
		{
			name:     "missing chapters",
			path:     "/courses/" + c.ID + "/save",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Bad Request", Fields: map[string]string{"chapters": "this field is required"}}),
		},
		{
			name:     "unknown block type",
			path:     "/courses/" + c.ID + "/save",
			body:     []byte(`{"chapters": [{"type": "quiz", "element_id": "A", "index": 0}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Bad Request", Fields: map[string]string{"chapters[0].type": "unknown content block type"}}),
		},
		{
			name:     "media block without asset",
			path:     "/courses/" + c.ID + "/save",
			body:     []byte(`{"chapters": [{"type": "video", "element_id": "A", "index": 0}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Bad Request",
				Fields:  map[string]string{"chapters[0].asset_id": "one of asset_id or url is required for this block type"},
			}),
		},
		{
			name:     "heading without text",
			path:     "/courses/" + c.ID + "/save",
			body:     []byte(`{"chapters": [{"type": "heading", "element_id": "A", "index": 0, "text": " "}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Bad Request",
				Fields:  map[string]string{"chapters[0].text": "text is required for this block type"},
			}),
		},
		{
			name:     "unknown course",
			path:     "/courses/lol/save",
			body:     marchallObj(t, map[string]interface{}{"chapters": chapters}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "course not found"}),
		},
		{
			name:     "save",
			path:     "/courses/" + c.ID + "/save",
			body:     marchallObj(t, map[string]interface{}{"chapters": chapters}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, saved),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPut, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// chapters read back in the order they were saved
	req, rec := newRequest(http.MethodGet, "/courses/"+c.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, saved)}, rec)

	// saving again replaces the whole sequence
	req, rec = newRequest(http.MethodPut, "/courses/"+c.ID+"/save", []byte(`{"chapters": []}`))
	app.ServeHTTP(rec, req)
	saved.Chapters = []course.Block{}
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, saved)}, rec)
}

func Test_courseApi_publish(t *testing.T) {
	app, deps := setup(t)

	usr := testutil.CreateUser(t, deps.usrRepo, "awe", "awe@test.cd", "mdr")
	c := testutil.CreateCourse(t, deps.courseRepo, usr, "Algebra", 0, false)

	chapters := testutil.Blocks("algebra", 2)
	published := c
	published.Chapters = chapters
	published.IsPublished = true
	unpublished := published
	unpublished.IsPublished = false

	tests := []httpTest{
		{
			name:     "unknown course",
			path:     "/courses/lol/publish",
			body:     marchallObj(t, map[string]interface{}{"chapters": chapters}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "course not found"}),
		},
		{
			name:     "publish by default",
			path:     "/courses/" + c.ID + "/publish",
			body:     marchallObj(t, map[string]interface{}{"chapters": chapters}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, published),
		},
		{
			name:     "unpublish",
			path:     "/courses/" + c.ID + "/publish",
			body:     marchallObj(t, map[string]interface{}{"chapters": chapters, "is_published": false}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, unpublished),
		},
		{
			name:     "publish explicitly",
			path:     "/courses/" + c.ID + "/publish",
			body:     marchallObj(t, map[string]interface{}{"chapters": chapters, "is_published": true}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, published),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPut, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// published course is now listed publicly
	req, rec := newRequest(http.MethodGet, "/courses")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, published)}, rec)
}

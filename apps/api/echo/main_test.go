package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/analytics"
	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/credit"
	"github.com/gurumantra/backend/core/user"
	logsvc "github.com/gurumantra/backend/services/logger"
	uploadsvc "github.com/gurumantra/backend/services/upload"
	inmemdb "github.com/gurumantra/backend/storage/database/inmem"
	"github.com/gurumantra/backend/testutil"
)

type testDeps struct {
	conf       *core.Config
	usrRepo    user.Repository
	courseRepo course.Repository
	assetRepo  asset.Repository
	creditRepo credit.Repository
}

func setup(t *testing.T) (*Server, testDeps) {
	conf := testutil.Config(t)

	// set up DB & repos
	db := inmemdb.Open()
	deps := testDeps{
		conf:       conf,
		usrRepo:    inmemdb.NewUserRepository(db),
		courseRepo: inmemdb.NewCourseRepository(db),
		assetRepo:  inmemdb.NewAssetRepository(db),
		creditRepo: inmemdb.NewCreditRepository(db),
	}

	// set up services
	zl, err := logsvc.NewZap(conf)
	if err != nil {
		t.Fatalf("NewZap() failed: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(false)

	uploadSvc, err := uploadsvc.NewDiskService(conf)
	if err != nil {
		t.Fatalf("NewDiskService() failed: %v", err)
	}
	validate, translator := testutil.NewValidator()

	// set up server
	server := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		UserSvc:      user.NewService(deps.usrRepo),
		CourseSvc:    course.NewService(deps.courseRepo),
		AssetSvc:     asset.NewService(deps.assetRepo),
		AnalyticsSvc: analytics.NewService(deps.courseRepo, deps.assetRepo, deps.creditRepo),
		UploadSvc:    uploadSvc,
		Validate:     validate,
		Translator:   translator,
	})
	t.Cleanup(func() { _ = server.Close() })
	return server, deps
}

type httpErr struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", rec.Body.String(), err)
	}
}

func TestHome(t *testing.T) {
	app, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "Welcome to Guru Mantra API!" {
		t.Errorf("failed! body = %q", got)
	}
}

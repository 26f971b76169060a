package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/analytics"
	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/user"
)

type (
	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		UserSvc      user.ServiceInterface
		CourseSvc    course.ServiceInterface
		AssetSvc     asset.ServiceInterface
		AnalyticsSvc analytics.ServiceInterface
		UploadSvc    core.UploadService
		Validate     *validator.Validate
		Translator   ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: conf.Server.AllowOrigins}))
	s.app.Use(middleware.BodyLimit(conf.Server.BodyLimit))

	if conf.Uploads.Engine == core.UploadDisk {
		s.app.Static(conf.Uploads.MountPath, conf.UploadsDir())
	}

	s.app.GET("/", s.home)

	registerUserAPI(s.app, s.deps.UserSvc, s.deps.UploadSvc, s.deps.Validate)
	registerCourseAPI(s.app, s.deps.CourseSvc, s.deps.Validate)
	registerAssetAPI(s.app, s.deps.AssetSvc, s.deps.UploadSvc, s.deps.Validate)
	registerAnalyticsAPI(s.app, s.deps.AnalyticsSvc, s.deps.CourseSvc)
}

// Start blocks until the server stops; errors other than a clean shutdown are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

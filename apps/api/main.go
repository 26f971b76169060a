package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/dig"

	"github.com/gurumantra/backend/apps/api/di"
	echoapi "github.com/gurumantra/backend/apps/api/echo"
	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/analytics"
	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/user"
	appfs "github.com/gurumantra/backend/fs"
)

type serverParams struct {
	dig.In

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

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		UserSvc:      p.UserSvc,
		CourseSvc:    p.CourseSvc,
		AssetSvc:     p.AssetSvc,
		AnalyticsSvc: p.AnalyticsSvc,
		UploadSvc:    p.UploadSvc,
		Validate:     p.Validate,
		Translator:   p.Translator,
	})
}

func main() {
	c := di.New(core.NewConfig)
	must(c.Provide(newServer))

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		stores *di.Stores,
		mailSvc core.EmailService,
		server *echoapi.Server,
	) {
		// =========================================================================
		// Initialize App

		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, conf.Debug, logger)

		if s, ok := logger.(interface{ Sync() }); ok {
			defer s.Sync()
		}
		defer func() {
			if err := stores.Close(); err != nil {
				logger.Error("failed to close database", err)
			}
		}()
		defer mailSvc.Wait()
		defer logger.Info("Application stopped")

		// =========================================================================
		// Start Debug Service
		//
		// /debug/vars - Added to the default mux by importing the expvar package.

		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)
		expvar.NewString("dbEngine").Set(conf.Database.Engine)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()

		// =========================================================================
		// Start API Service

		logger.Info("API listening on " + conf.Server.Address())
		go server.Start()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			logger.Error(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

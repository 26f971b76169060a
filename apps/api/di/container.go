// Package di builds the dependency injection container shared by the API and the admin CLI.
package di

import (
	"context"
	"log"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/analytics"
	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/credit"
	"github.com/gurumantra/backend/core/notification"
	"github.com/gurumantra/backend/core/user"
	emailsvc "github.com/gurumantra/backend/services/email"
	logsvc "github.com/gurumantra/backend/services/logger"
	uploadsvc "github.com/gurumantra/backend/services/upload"
)

type ConfigFunc func() *core.Config

func newLogger(zl *zap.SugaredLogger, conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newUploadService(conf *core.Config) (core.UploadService, error) {
	if conf.Uploads.Engine == core.UploadGCS {
		return uploadsvc.NewGCSService(context.Background(), conf)
	}
	return uploadsvc.NewDiskService(conf)
}

func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// NewValidator returns a validator with every custom tag and translation registered.
func NewValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container.
// newConfig is core.NewConfig unless the caller needs to override settings.
func New(newConfig ConfigFunc) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(logsvc.NewZap))
	must(c.Provide(newLogger))
	must(c.Provide(NewStores))
	must(c.Provide(func(s *Stores) user.Repository { return s.Users }))
	must(c.Provide(func(s *Stores) course.Repository { return s.Courses }))
	must(c.Provide(func(s *Stores) asset.Repository { return s.Assets }))
	must(c.Provide(func(s *Stores) credit.Repository { return s.Credits }))
	must(c.Provide(newEmailService))
	must(c.Provide(newUploadService))
	must(c.Provide(NewTranslator))
	must(c.Provide(NewValidator))
	must(c.Provide(user.NewService, dig.As(new(user.ServiceInterface))))
	must(c.Provide(course.NewService, dig.As(new(course.ServiceInterface))))
	must(c.Provide(asset.NewService, dig.As(new(asset.ServiceInterface))))
	must(c.Provide(analytics.NewService, dig.As(new(analytics.ServiceInterface))))
	must(c.Provide(notification.NewService))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}

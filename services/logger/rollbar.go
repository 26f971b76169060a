package logsvc

import (
	"fmt"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/user"
)

// RollbarLogger reports to Rollbar and writes structured output through zap.
type RollbarLogger struct {
	log *zap.SugaredLogger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewZap builds the local logger: human readable in debug, JSON otherwise.
func NewZap(conf *core.Config) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if conf.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if conf.TestMode {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return zl.Sugar().With("app", conf.AppName, "env", strings.ToLower(conf.Env)), nil
}

func NewRollbarLogger(log *zap.SugaredLogger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{log: log}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Sync flushes zap buffers and waits for pending Rollbar reports.
func (l RollbarLogger) Sync() {
	_ = l.log.Sync()
	rollbar.Wait()
}

// expected fmt: msg | error, map[string]interface{}, user.User
func (l RollbarLogger) prepare(msg string, args []interface{}) (rbArgs []interface{}, fields []interface{}) {
	var usrSet bool
	rbArgs = append(make([]interface{}, 0, len(args)+1), msg)
	for i, arg := range args {
		switch v := arg.(type) {
		case user.User:
			// set logged in User; only one
			if !usrSet {
				rollbar.SetPerson(v.ID, v.Username, v.Email)
				fields = append(fields, "user_id", v.ID)
				usrSet = true
			}
			continue
		case error:
			fields = append(fields, "error", fmt.Sprintf("%+v", v))
		case map[string]interface{}:
			for k, val := range v {
				fields = append(fields, k, val)
			}
		default:
			fields = append(fields, fmt.Sprintf("arg%d", i), v)
		}
		rbArgs = append(rbArgs, arg)
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return rbArgs, fields
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	rollbar.Debug(rbArgs...)
	l.log.Debugw(msg, fields...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	rollbar.Info(rbArgs...)
	l.log.Infow(msg, fields...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	rollbar.Warning(rbArgs...)
	l.log.Warnw(msg, fields...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	rollbar.Error(rbArgs...)
	l.log.Errorw(msg, fields...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rbArgs, fields := l.prepare(msg, args)
	rollbar.Critical(rbArgs...)
	rollbar.Wait()
	l.log.Fatalw(msg, fields...)
}

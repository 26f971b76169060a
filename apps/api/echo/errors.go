package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/user"
)

var (
	errHttpInvalidCreds   = echo.NewHTTPError(http.StatusUnauthorized, user.ErrInvalidCredentials.Error())
	errHttpEmailExists    = echo.NewHTTPError(http.StatusConflict, user.ErrEmailExists.Error())
	errHttpUserNotFound   = echo.NewHTTPError(http.StatusNotFound, user.ErrNotFound.Error())
	errHttpCourseNotFound = echo.NewHTTPError(http.StatusNotFound, course.ErrNotFound.Error())
)

// domainHTTPError maps domain sentinels to their HTTP response; other errors are returned as is.
func domainHTTPError(err error) error {
	switch err {
	case user.ErrInvalidCredentials:
		return errHttpInvalidCreds
	case user.ErrEmailExists:
		return errHttpEmailExists
	case user.ErrNotFound:
		return errHttpUserNotFound
	case course.ErrNotFound:
		return errHttpCourseNotFound
	}
	return err
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Every error body has a "message"; validation errors add per-field "fields".
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code   int
			msg    interface{}
			fields map[string]string
		)

		switch origErr := domainHTTPError(errors.Cause(err)).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			msg = origErr.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			msg = http.StatusText(code)
			fields = core.FieldErrors(origErr, translator)
		case *core.ValidationError:
			code = http.StatusBadRequest
			msg = origErr.Error()
			if len(origErr.Fields) > 0 {
				fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fields[fErr.Field] = fErr.Error
				}
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg = http.StatusText(code)
			logger.Error(
				http.StatusText(code),
				errors.Wrap(err, "request failed"),
				map[string]interface{}{"method": ctx.Request().Method, "path": ctx.Path()},
			)
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			msg = err.Error()
		}
		body := echo.Map{"message": msg}
		if fields != nil {
			body["fields"] = fields
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

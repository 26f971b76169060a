package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/user"
)

const profilePictureField = "profile_picture"

type userApi struct {
	svc       user.ServiceInterface
	uploadSvc core.UploadService
	validate  *validator.Validate
}

func registerUserAPI(e *echo.Echo, svc user.ServiceInterface, uploadSvc core.UploadService, validate *validator.Validate) {
	api := userApi{
		svc:       svc,
		uploadSvc: uploadSvc,
		validate:  validate,
	}

	e.POST("/register", api.register)
	e.POST("/login", api.login)
	e.PUT("/edit", api.edit)
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if url, err := storeFormFile(ctx, api.uploadSvc, profilePictureField); err != nil {
		return errors.Wrap(err, "storing profile picture")
	} else if url != "" {
		data.ProfilePicture = url
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		// malformed credentials are still bad credentials
		return user.ErrInvalidCredentials
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) edit(ctx echo.Context) error {
	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

// storeFormFile saves the multipart file sent under field, if any, and returns its URL.
func storeFormFile(ctx echo.Context, uploadSvc core.UploadService, field string) (string, error) {
	if !strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return "", nil
	}
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Cause(err) == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	return uploadSvc.Store(ctx.Request().Context(), fh.Filename, f)
}

package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/asset"
)

const assetFileField = "file"

type assetApi struct {
	svc       asset.ServiceInterface
	uploadSvc core.UploadService
	validate  *validator.Validate
}

func registerAssetAPI(e *echo.Echo, svc asset.ServiceInterface, uploadSvc core.UploadService, validate *validator.Validate) {
	api := assetApi{
		svc:       svc,
		uploadSvc: uploadSvc,
		validate:  validate,
	}

	e.POST("/assets", api.create)
	e.GET("/user/:user_id/assets", api.queryByUser)
}

// create records a resource. Multipart requests upload `file` first and use its URL.
func (api *assetApi) create(ctx echo.Context) error {
	var data asset.NewAsset
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAsset")
	}

	if fh, err := ctx.FormFile(assetFileField); err == nil && data.Filename == "" {
		data.Filename = fh.Filename
	}
	url, err := storeFormFile(ctx, api.uploadSvc, assetFileField)
	if err != nil {
		return errors.Wrap(err, "storing asset file")
	}
	if url != "" {
		data.FileURL = url
	}

	if err = data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating asset")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assetApi) queryByUser(ctx echo.Context) error {
	assets, err := api.svc.Query(ctx.Request().Context(), asset.QueryFilter{UserID: ctx.Param("user_id")})
	if err != nil {
		return errors.Wrap(err, "querying user assets")
	}
	return ctx.JSON(http.StatusOK, assets)
}

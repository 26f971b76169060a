package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core/course"
)

type courseApi struct {
	svc      course.ServiceInterface
	validate *validator.Validate
}

func registerCourseAPI(e *echo.Echo, svc course.ServiceInterface, validate *validator.Validate) {
	api := courseApi{
		svc:      svc,
		validate: validate,
	}

	e.POST("/courses", api.create)
	e.GET("/courses", api.query)
	e.GET("/user/:user_id/courses", api.queryByUser)

	dg := e.Group("/courses/:course_id")
	dg.GET("", api.retrieve)
	dg.PUT("/save", api.save)
	dg.PUT("/publish", api.publish)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

// query lists published courses; `?all=true` lists every course.
func (api *courseApi) query(ctx echo.Context) error {
	all, _ := strconv.ParseBool(ctx.QueryParam("all"))

	courses, err := api.svc.Query(ctx.Request().Context(), course.QueryFilter{PublishedOnly: !all})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) queryByUser(ctx echo.Context) error {
	courses, err := api.svc.Query(ctx.Request().Context(), course.QueryFilter{UserID: ctx.Param("user_id")})
	if err != nil {
		return errors.Wrap(err, "querying user courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	c, err := api.svc.Get(ctx.Request().Context(), ctx.Param("course_id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) save(ctx echo.Context) error {
	var data course.SaveChapters
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveChapters")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Save(ctx.Request().Context(), ctx.Param("course_id"), data)
	if err != nil {
		return errors.Wrap(err, "saving course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) publish(ctx echo.Context) error {
	var data course.PublishCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PublishCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Publish(ctx.Request().Context(), ctx.Param("course_id"), data)
	if err != nil {
		return errors.Wrap(err, "publishing course")
	}
	return ctx.JSON(http.StatusOK, c)
}

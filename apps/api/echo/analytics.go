package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core/analytics"
	"github.com/gurumantra/backend/core/course"
)

type analyticsApi struct {
	svc       analytics.ServiceInterface
	courseSvc course.ServiceInterface
}

func registerAnalyticsAPI(e *echo.Echo, svc analytics.ServiceInterface, courseSvc course.ServiceInterface) {
	api := analyticsApi{
		svc:       svc,
		courseSvc: courseSvc,
	}

	e.GET("/user/:user_id/analytics", api.userAnalytics)
	e.GET("/user/:user_id/dash", api.dashboard)
	e.GET("/admin/analytics", api.adminAnalytics)
	e.GET("/stats", api.adminAnalytics)
	e.GET("/leaderboard", api.leaderboard)
}

// Handlers

func (api *analyticsApi) userAnalytics(ctx echo.Context) error {
	rep, err := api.svc.UserAnalytics(ctx.Request().Context(), ctx.Param("user_id"))
	if err != nil {
		return errors.Wrap(err, "computing user analytics")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *analyticsApi) adminAnalytics(ctx echo.Context) error {
	rep, err := api.svc.AdminAnalytics(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing admin analytics")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *analyticsApi) dashboard(ctx echo.Context) error {
	dash, err := api.svc.Dashboard(ctx.Request().Context(), ctx.Param("user_id"))
	if err != nil {
		return errors.Wrap(err, "computing dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *analyticsApi) leaderboard(ctx echo.Context) error {
	entries, err := api.courseSvc.Leaderboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "ranking courses")
	}
	return ctx.JSON(http.StatusOK, entries)
}

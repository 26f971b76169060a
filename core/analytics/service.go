package analytics

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
	"github.com/gurumantra/backend/core/credit"
)

type (
	ServiceInterface interface {
		UserAnalytics(ctx context.Context, userID string) (Report, error)
		AdminAnalytics(ctx context.Context) (Report, error)
		Dashboard(ctx context.Context, userID string) (Dashboard, error)
	}

	Service struct {
		courses course.Repository
		assets  asset.Repository
		credits credit.Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(courses course.Repository, assets asset.Repository, credits credit.Repository) *Service {
	return &Service{courses: courses, assets: assets, credits: credits}
}

// UserAnalytics summarizes the courses, resources and credit points owned by userID.
func (svc *Service) UserAnalytics(ctx context.Context, userID string) (Report, error) {
	return svc.report(ctx, userID, func(ctx context.Context) (int, error) {
		return credit.PointsOf(ctx, svc.credits, userID)
	})
}

// AdminAnalytics is UserAnalytics across every user; credit points are the platform total.
func (svc *Service) AdminAnalytics(ctx context.Context) (Report, error) {
	return svc.report(ctx, "", svc.credits.TotalCreditPoints)
}

// report runs the independent reads concurrently; an empty userID means all users.
func (svc *Service) report(ctx context.Context, userID string, points func(context.Context) (int, error)) (Report, error) {
	var (
		rep     Report
		courses []course.Course
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		rep.CourseCount, err = svc.courses.CountCourses(gctx, course.QueryFilter{UserID: userID})
		return errors.Wrap(err, "counting courses")
	})
	g.Go(func() (err error) {
		rep.ResourceCount, err = svc.assets.CountAssets(gctx, asset.QueryFilter{UserID: userID})
		return errors.Wrap(err, "counting assets")
	})
	g.Go(func() (err error) {
		rep.CreditPoints, err = points(gctx)
		return errors.Wrap(err, "getting credit points")
	})
	g.Go(func() (err error) {
		courses, err = svc.courses.QueryCourses(gctx, course.QueryFilter{UserID: userID})
		return errors.Wrap(err, "querying courses")
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep.CoursesStats = make([]CourseStat, 0, len(courses))
	for _, c := range courses {
		rep.CoursesStats = append(rep.CoursesStats, NewCourseStat(c.Title))
	}
	return rep, nil
}

// Dashboard returns the published courses and the resources of userID with placeholder stats.
func (svc *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	dash := Dashboard{
		Stats: DashboardStats{
			AvgEng: ZeroEngagement,
			Badge:  NoBadge,
		},
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dash.Stats.CreditPoints, err = credit.PointsOf(gctx, svc.credits, userID)
		return errors.Wrap(err, "getting credit points")
	})
	g.Go(func() (err error) {
		dash.Courses, err = svc.courses.QueryCourses(gctx, course.QueryFilter{UserID: userID, PublishedOnly: true})
		return errors.Wrap(err, "querying courses")
	})
	g.Go(func() (err error) {
		dash.Resources, err = svc.assets.QueryAssets(gctx, asset.QueryFilter{UserID: userID})
		return errors.Wrap(err, "querying assets")
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	if dash.Courses == nil {
		dash.Courses = []course.Course{}
	}
	for i := range dash.Courses {
		if dash.Courses[i].Chapters == nil {
			dash.Courses[i].Chapters = []course.Block{}
		}
	}
	if dash.Resources == nil {
		dash.Resources = []asset.Asset{}
	}
	return dash, nil
}

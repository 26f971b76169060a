package analytics

import (
	"github.com/gurumantra/backend/core/asset"
	"github.com/gurumantra/backend/core/course"
)

const (
	EngagementLabel = "Student Engagement"
	NoBadge         = "none"
	ZeroEngagement  = "0%"
)

// WeekLabels are the x-axis labels of the per-course engagement chart.
var WeekLabels = [7]string{"M", "T", "W", "T", "F", "S", "S"}

type (
	Dataset struct {
		Label string `json:"label"`
		Data  [7]int `json:"data"`
	}

	Chart struct {
		Labels   [7]string `json:"labels"`
		Datasets Dataset   `json:"datasets"`
	}

	CourseStat struct {
		Title string `json:"title"`
		Chart Chart  `json:"chart"`
	}

	// Report is the analytics summary of one user (or of the whole platform).
	// StudentCount and the engagement series are placeholders: no enrolment data exists yet.
	Report struct {
		CourseCount   int          `json:"course_count"`
		ResourceCount int          `json:"resource_count"`
		CreditPoints  int          `json:"credit_points"`
		StudentCount  int          `json:"student_count"`
		CoursesStats  []CourseStat `json:"courses_stats"`
	}

	DashboardStats struct {
		StudentCount int    `json:"student_count"`
		CreditPoints int    `json:"credit_points"`
		AvgEng       string `json:"avg_eng"`
		AvgRating    int    `json:"avg_rating"`
		Badge        string `json:"badge"`
	}

	Dashboard struct {
		Courses   []course.Course `json:"courses"`
		Resources []asset.Asset   `json:"resources"`
		Stats     DashboardStats  `json:"stats"`
	}
)

// NewCourseStat returns the (all zero) weekly engagement chart of a course.
func NewCourseStat(title string) CourseStat {
	return CourseStat{
		Title: title,
		Chart: Chart{
			Labels:   WeekLabels,
			Datasets: Dataset{Label: EngagementLabel},
		},
	}
}

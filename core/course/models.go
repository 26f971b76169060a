package course

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gurumantra/backend/core"
)

// BlockType is the tag of a chapter content block.
type BlockType string

const (
	BlockSectionTitle BlockType = "section_title"
	BlockHeading      BlockType = "heading"
	BlockDesc         BlockType = "desc"
	BlockImage        BlockType = "image"
	BlockVideo        BlockType = "video"
	BlockModel        BlockType = "model"
)

var BlockTypes = []BlockType{BlockSectionTitle, BlockHeading, BlockDesc, BlockImage, BlockVideo, BlockModel}

// IsMedia reports whether blocks of this type reference an asset rather than carry text.
func (bt BlockType) IsMedia() bool {
	return bt == BlockImage || bt == BlockVideo || bt == BlockModel
}

// Block is one content unit of a Course's chapters sequence.
// Text kinds (section_title, heading, desc) use Text; media kinds (image, video, model)
// reference an Asset by AssetID and/or URL.
type Block struct {
	Type      BlockType `json:"type" validate:"required,blocktype"`
	ElementID string    `json:"element_id" validate:"required"`
	Index     int       `json:"index" validate:"min=0"`
	Text      string    `json:"text,omitempty"`
	AssetID   string    `json:"asset_id,omitempty"`
	URL       string    `json:"url,omitempty"`
}

type Course struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"is_published"`
	Chapters    []Block   `json:"chapters"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title    string `json:"title"`
	UserID   string `json:"user_id" validate:"required,notblank"`
	Username string `json:"username"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.UserID = core.CleanString(nc.UserID)
	nc.Username = core.CleanString(nc.Username)
	return validate.Struct(nc)
}

// SaveChapters replaces the whole chapters sequence of a Course.
type SaveChapters struct {
	Chapters []Block `json:"chapters" validate:"required,dive"`
}

func (sc *SaveChapters) Validate(validate *validator.Validate) error {
	return validate.Struct(sc)
}

// PublishCourse replaces the chapters sequence and sets the published flag in one write.
// IsPublished defaults to true when omitted.
type PublishCourse struct {
	Chapters    []Block `json:"chapters" validate:"required,dive"`
	IsPublished *bool   `json:"is_published"`
}

func (pc *PublishCourse) Validate(validate *validator.Validate) error {
	return validate.Struct(pc)
}

func (pc PublishCourse) Published() bool {
	return pc.IsPublished == nil || *pc.IsPublished
}

type QueryFilter struct {
	UserID        string
	PublishedOnly bool
}

// Match reports whether c satisfies the filter.
func (qf QueryFilter) Match(c Course) bool {
	if qf.UserID != "" && c.UserID != qf.UserID {
		return false
	}
	if qf.PublishedOnly && !c.IsPublished {
		return false
	}
	return true
}

// LeaderboardEntry is a Course projected for the leaderboard (no internal ID).
type LeaderboardEntry struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	ChaptersCount int       `json:"chaptersCount"`
	Chapters      []Block   `json:"chapters"`
	Title         string    `json:"title"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RankByChapters orders courses by chapters count, descending.
// courses must be in creation order; ties keep that order.
func RankByChapters(courses []Course) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(courses))
	for _, c := range courses {
		chapters := c.Chapters
		if chapters == nil {
			chapters = []Block{}
		}
		entries = append(entries, LeaderboardEntry{
			UserID:        c.UserID,
			Username:      c.Username,
			ChaptersCount: len(chapters),
			Chapters:      chapters,
			Title:         c.Title,
			IsPublished:   c.IsPublished,
			CreatedAt:     c.CreatedAt,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChaptersCount > entries[j].ChaptersCount
	})
	return entries
}

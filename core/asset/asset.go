// Package asset holds uploaded teaching resources referenced from chapter content blocks.
package asset

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
)

type Asset struct {
	ID          string    `json:"_id"`
	Type        string    `json:"type"`
	Filename    string    `json:"filename"`
	FileURL     string    `json:"file_url"`
	UserName    string    `json:"user_name"`
	UserID      string    `json:"user_id"`
	Desc        string    `json:"desc"`
	ElementType string    `json:"element_type"`
	Title       string    `json:"title"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// QueryFilter selects assets; the zero value matches every asset.
type QueryFilter struct {
	UserID string
}

func (qf QueryFilter) Match(a Asset) bool {
	return qf.UserID == "" || a.UserID == qf.UserID
}

type Repository interface {
	CreateAsset(ctx context.Context, a Asset) (Asset, error)
	// QueryAssets returns the matching assets in creation order.
	QueryAssets(ctx context.Context, filter QueryFilter) ([]Asset, error)
	CountAssets(ctx context.Context, filter QueryFilter) (int, error)
}

// NewAsset contains information needed to record an uploaded resource.
// FileURL is filled by the upload service when a file is sent along.
type NewAsset struct {
	Type        string `json:"type" form:"type"`
	Filename    string `json:"filename" form:"filename"`
	FileURL     string `json:"file_url" form:"file_url" validate:"required"`
	UserName    string `json:"user_name" form:"user_name"`
	UserID      string `json:"user_id" form:"user_id" validate:"required,notblank"`
	Desc        string `json:"desc" form:"desc"`
	ElementType string `json:"element_type" form:"element_type" validate:"required,notblank"`
	Title       string `json:"title" form:"title"`
	IsPrivate   bool   `json:"is_private" form:"is_private"`
}

func (na *NewAsset) Validate(validate *validator.Validate) error {
	na.UserID = core.CleanString(na.UserID)
	na.ElementType = core.CleanString(na.ElementType)
	na.Title = core.CleanString(na.Title)
	return validate.Struct(na)
}

type (
	ServiceInterface interface {
		Create(ctx context.Context, na NewAsset) (Asset, error)
		Query(ctx context.Context, filter QueryFilter) ([]Asset, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewAsset) (Asset, error) {
	a, err := svc.repo.CreateAsset(ctx, Asset{
		Type:        na.Type,
		Filename:    na.Filename,
		FileURL:     na.FileURL,
		UserName:    na.UserName,
		UserID:      na.UserID,
		Desc:        na.Desc,
		ElementType: na.ElementType,
		Title:       na.Title,
		IsPrivate:   na.IsPrivate,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Asset{}, errors.Wrap(err, "inserting asset")
	}
	return a, nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Asset, error) {
	assets, err := svc.repo.QueryAssets(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying assets")
	}
	if assets == nil {
		return []Asset{}, nil
	}
	return assets, nil
}

package category

import (
	"context"

	"scriptum/internal/core/category"
	"scriptum/internal/core/location"
)

// CategoryRepository is the outbound port for category lookups. Categories
// are reference data; end users never write them, so there is no mutation
// surface here.
type CategoryRepository interface {
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*category.Category, error)
	FindByID(ctx context.Context, id string) (*category.Category, error)
	FindPublished(ctx context.Context) ([]*category.Category, error)
}

// LocationRepository is the outbound port for location lookups.
type LocationRepository interface {
	FindByID(ctx context.Context, id string) (*location.Location, error)
	FindPublished(ctx context.Context) ([]*location.Location, error)
}

type CategoryDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type LocationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package database

import (
	"context"

	"scriptum/internal/config"
	"scriptum/internal/core/category"
	"scriptum/internal/core/location"
)

// CategoryRepositoryDatabase implements CategoryRepository on top of gorm.
type CategoryRepositoryDatabase struct{}

func NewCategoryRepositoryDatabase() *CategoryRepositoryDatabase {
	return &CategoryRepositoryDatabase{}
}

func (repo *CategoryRepositoryDatabase) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*category.Category, error) {
	q := config.DB.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	var c category.Category
	if err := q.First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (repo *CategoryRepositoryDatabase) FindByID(ctx context.Context, id string) (*category.Category, error) {
	var c category.Category
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (repo *CategoryRepositoryDatabase) FindPublished(ctx context.Context) ([]*category.Category, error) {
	var cats []*category.Category
	if err := config.DB.WithContext(ctx).
		Where("is_published = ?", true).
		Order("title").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// LocationRepositoryDatabase implements LocationRepository on top of gorm.
type LocationRepositoryDatabase struct{}

func NewLocationRepositoryDatabase() *LocationRepositoryDatabase {
	return &LocationRepositoryDatabase{}
}

func (repo *LocationRepositoryDatabase) FindByID(ctx context.Context, id string) (*location.Location, error) {
	var l location.Location
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (repo *LocationRepositoryDatabase) FindPublished(ctx context.Context) ([]*location.Location, error) {
	var locs []*location.Location
	if err := config.DB.WithContext(ctx).
		Where("is_published = ?", true).
		Order("name").
		Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

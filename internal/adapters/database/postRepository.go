package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"scriptum/internal/config"
	"scriptum/internal/core/post"
)

// PostRepositoryDatabase implements PostRepository on top of gorm.
type PostRepositoryDatabase struct{}

func NewPostRepositoryDatabase() *PostRepositoryDatabase {
	return &PostRepositoryDatabase{}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := config.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := config.DB.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	return config.DB.WithContext(ctx).Save(p).Error
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return config.DB.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{}).Error
}

// visible builds the public visibility filter: published, not future-dated,
// and category (when set) published as well.
func visible(ctx context.Context, now time.Time) *gorm.DB {
	return config.DB.WithContext(ctx).
		Model(&post.Post{}).
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Where("posts.is_published = ?", true).
		Where("posts.pub_date <= ?", now).
		Where("posts.category_id IS NULL OR categories.is_published = ?", true)
}

func page(q *gorm.DB, offset, limit int) ([]*post.Post, int64, error) {
	// New session so Count does not pollute the Find chain below.
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*post.Post
	if err := q.
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (repo *PostRepositoryDatabase) FindPublished(ctx context.Context, now time.Time, offset, limit int) ([]*post.Post, int64, error) {
	return page(visible(ctx, now), offset, limit)
}

func (repo *PostRepositoryDatabase) FindPublishedByCategory(ctx context.Context, categoryID string, now time.Time, offset, limit int) ([]*post.Post, int64, error) {
	return page(visible(ctx, now).Where("posts.category_id = ?", categoryID), offset, limit)
}

func (repo *PostRepositoryDatabase) FindByAuthor(ctx context.Context, authorID string, publicOnly bool, now time.Time, offset, limit int) ([]*post.Post, int64, error) {
	if publicOnly {
		return page(visible(ctx, now).Where("posts.author_id = ?", authorID), offset, limit)
	}
	q := config.DB.WithContext(ctx).
		Model(&post.Post{}).
		Where("posts.author_id = ?", authorID)
	return page(q, offset, limit)
}

func (repo *PostRepositoryDatabase) ListIDs(ctx context.Context, offset, limit int) ([]string, error) {
	var ids []string
	if err := config.DB.WithContext(ctx).
		Model(&post.Post{}).
		Order("created_at").
		Offset(offset).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

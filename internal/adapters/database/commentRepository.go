package database

import (
	"context"

	"scriptum/internal/config"
	"scriptum/internal/core/comment"
)

// CommentRepositoryDatabase implements CommentRepository on top of gorm.
type CommentRepositoryDatabase struct{}

func NewCommentRepositoryDatabase() *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := config.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id string) (*comment.Comment, error) {
	var c comment.Comment
	if err := config.DB.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) FindByPost(ctx context.Context, postID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := config.DB.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) Update(ctx context.Context, c *comment.Comment) error {
	return config.DB.WithContext(ctx).Save(c).Error
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return config.DB.WithContext(ctx).Where("id = ?", id).Delete(&comment.Comment{}).Error
}

func (repo *CommentRepositoryDatabase) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID string
		Total  int64
	}
	if err := config.DB.WithContext(ctx).
		Model(&comment.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	// Posts without comments are reported as zero, not omitted.
	for _, id := range postIDs {
		counts[id] = 0
	}
	for _, r := range rows {
		counts[r.PostID] = r.Total
	}
	return counts, nil
}

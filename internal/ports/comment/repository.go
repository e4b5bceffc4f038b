package comment

import (
	"context"
	"time"

	"scriptum/internal/core/comment"
	userPort "scriptum/internal/ports/user"
)

// CommentRepository is the outbound port for storing and querying comments.
// FindByPost returns comments ordered by creation time ascending.
type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id string) (*comment.Comment, error)
	FindByPost(ctx context.Context, postID string) ([]*comment.Comment, error)
	Update(ctx context.Context, c *comment.Comment) error
	Delete(ctx context.Context, id string) error
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
}

// CountCache caches per-post comment counts. Misses are reported by
// omission from the Get result; the database stays authoritative and a
// background worker reconciles drift.
type CountCache interface {
	Get(ctx context.Context, postIDs []string) (map[string]int64, error)
	Set(ctx context.Context, postID string, count int64) error
	Incr(ctx context.Context, postID string) error
	Decr(ctx context.Context, postID string) error
	Invalidate(ctx context.Context, postID string) error
}

type CommentDTO struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	PostID    string            `json:"post_id"`
	Author    *userPort.UserDTO `json:"author,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

package post

import (
	"context"
	"time"

	"scriptum/internal/core/post"
	categoryPort "scriptum/internal/ports/category"
	userPort "scriptum/internal/ports/user"
)

// PostRepository is the outbound port for storing and querying posts.
// The Find* listing methods return the page slice plus the total number of
// matching rows. "Published" always means the public visibility filter:
// is_published, pub_date <= now, category published or absent.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	Delete(ctx context.Context, id string) error

	FindPublished(ctx context.Context, now time.Time, offset, limit int) ([]*post.Post, int64, error)
	FindPublishedByCategory(ctx context.Context, categoryID string, now time.Time, offset, limit int) ([]*post.Post, int64, error)
	FindByAuthor(ctx context.Context, authorID string, publicOnly bool, now time.Time, offset, limit int) ([]*post.Post, int64, error)
	ListIDs(ctx context.Context, offset, limit int) ([]string, error)
}

// PostInput carries the submitted form fields for create and edit. The
// author is never part of the input; it is always the acting user.
type PostInput struct {
	Title       string
	Text        string
	ImageURL    string
	PubDate     time.Time
	IsPublished bool
	CategoryID  string
	LocationID  string
}

type PostDTO struct {
	ID           string                    `json:"id"`
	Title        string                    `json:"title"`
	Text         string                    `json:"text"`
	ImageURL     string                    `json:"image_url,omitempty"`
	PubDate      time.Time                 `json:"pub_date"`
	IsPublished  bool                      `json:"is_published"`
	Author       *userPort.UserDTO         `json:"author,omitempty"`
	Category     *categoryPort.CategoryDTO `json:"category,omitempty"`
	Location     *categoryPort.LocationDTO `json:"location,omitempty"`
	CommentCount int64                     `json:"comment_count"`
	CreatedAt    time.Time                 `json:"created_at"`
}

// PageDTO is one page of a post listing.
type PageDTO struct {
	Posts      []*PostDTO `json:"posts"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPosts int64      `json:"total_posts"`
	TotalPages int        `json:"total_pages"`
}

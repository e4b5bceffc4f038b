package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"scriptum/internal/config"
	"scriptum/internal/core/category"
	"scriptum/internal/core/comment"
	"scriptum/internal/core/location"
	"scriptum/internal/core/post"
	"scriptum/internal/core/user"
)

// SetupDB points config.DB at a fresh in-memory sqlite database with the
// full schema migrated, and quiets the global logger.
func SetupDB(t *testing.T) {
	t.Helper()

	config.Logger = zap.NewNop()
	config.C.JWTSecret = "test-secret"
	config.C.TokenTTL = time.Hour
	config.C.PostsPerPage = 10

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; pin the pool to
	// one so every query sees the same schema and data.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&category.Category{},
		&location.Location{},
		&post.Post{},
		&comment.Comment{},
	))
	config.DB = db
}

// FakeCountCache is an in-memory CountCache used where tests do not want a
// live Redis.
type FakeCountCache struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewFakeCountCache() *FakeCountCache {
	return &FakeCountCache{counts: map[string]int64{}}
}

func (f *FakeCountCache) Get(ctx context.Context, postIDs []string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int64, len(postIDs))
	for _, id := range postIDs {
		if n, ok := f.counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *FakeCountCache) Set(ctx context.Context, postID string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[postID] = count
	return nil
}

func (f *FakeCountCache) Incr(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[postID]++
	return nil
}

func (f *FakeCountCache) Decr(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[postID]--
	return nil
}

func (f *FakeCountCache) Invalidate(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counts, postID)
	return nil
}

// Stored returns the cached count and whether the key is warm.
func (f *FakeCountCache) Stored(postID string) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.counts[postID]
	return n, ok
}

// Seed helpers. All write through config.DB directly.

func SeedUser(t *testing.T, username string, staff bool) *user.User {
	t.Helper()
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Password: "$2a$10$invalidhashforseedusers0000000000000000000000000000000",
		IsStaff:  staff,
	}
	require.NoError(t, config.DB.Create(u).Error)
	return u
}

func SeedCategory(t *testing.T, slug string, published bool) *category.Category {
	t.Helper()
	c := &category.Category{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       slug,
		Slug:        slug,
		IsPublished: published,
	}
	require.NoError(t, config.DB.Create(c).Error)
	return c
}

func SeedLocation(t *testing.T, name string) *location.Location {
	t.Helper()
	l := &location.Location{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        name,
		IsPublished: true,
	}
	require.NoError(t, config.DB.Create(l).Error)
	return l
}

// SeedPost creates a post with the given author and publication state.
// pubOffset shifts pub_date relative to now (negative = past).
func SeedPost(t *testing.T, author *user.User, title string, published bool, pubOffset time.Duration, cat *category.Category) *post.Post {
	t.Helper()
	p := &post.Post{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       title,
		Text:        "body of " + title,
		PubDate:     time.Now().Add(pubOffset),
		IsPublished: published,
		AuthorID:    author.ID,
	}
	if cat != nil {
		p.CategoryID = &cat.ID
	}
	require.NoError(t, config.DB.Create(p).Error)
	return p
}

func SeedComment(t *testing.T, author *user.User, p *post.Post, text string, createdAt time.Time) *comment.Comment {
	t.Helper()
	c := &comment.Comment{
		ID:        uuid.Must(uuid.NewV4()),
		Text:      text,
		PostID:    p.ID,
		AuthorID:  author.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, config.DB.Create(c).Error)
	return c
}

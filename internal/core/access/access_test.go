package access

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"scriptum/internal/core/category"
	"scriptum/internal/core/post"
)

func actorFor(id uuid.UUID) Actor {
	return Actor{ID: id, Authenticated: true}
}

func TestCanModify(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())

	assert.True(t, CanModify(actorFor(owner), owner))
	assert.False(t, CanModify(actorFor(other), owner))
	assert.False(t, CanModify(Anonymous(), owner))

	// Staff get no mutation rights from their flag.
	staff := Actor{ID: other, IsStaff: true, Authenticated: true}
	assert.False(t, CanModify(staff, owner))
}

func TestCanViewPost(t *testing.T) {
	now := time.Now()
	authorID := uuid.Must(uuid.NewV4())

	public := &post.Post{AuthorID: authorID, IsPublished: true, PubDate: now.Add(-time.Hour)}
	unpublished := &post.Post{AuthorID: authorID, IsPublished: false, PubDate: now.Add(-time.Hour)}
	future := &post.Post{AuthorID: authorID, IsPublished: true, PubDate: now.Add(time.Hour)}
	hiddenCategory := &post.Post{
		AuthorID:    authorID,
		IsPublished: true,
		PubDate:     now.Add(-time.Hour),
		Category:    &category.Category{IsPublished: false},
	}

	anon := Anonymous()
	author := actorFor(authorID)
	other := actorFor(uuid.Must(uuid.NewV4()))
	staff := Actor{ID: uuid.Must(uuid.NewV4()), IsStaff: true, Authenticated: true}

	for _, p := range []*post.Post{unpublished, future, hiddenCategory} {
		assert.False(t, CanViewPost(anon, p, now))
		assert.False(t, CanViewPost(other, p, now))
		assert.True(t, CanViewPost(author, p, now))
		assert.True(t, CanViewPost(staff, p, now))
	}

	assert.True(t, CanViewPost(anon, public, now))
	assert.True(t, CanViewPost(other, public, now))
}

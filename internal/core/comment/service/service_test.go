package commentapp

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbadapter "scriptum/internal/adapters/database"
	"scriptum/internal/core/access"
	"scriptum/internal/core/apperr"
	"scriptum/internal/testutil"
)

func newService(t *testing.T) (*CommentService, *testutil.FakeCountCache) {
	t.Helper()
	testutil.SetupDB(t)
	cache := testutil.NewFakeCountCache()
	svc := NewCommentService(
		dbadapter.NewCommentRepositoryDatabase(),
		dbadapter.NewPostRepositoryDatabase(),
		cache,
	)
	return svc, cache
}

func asActor(id uuid.UUID, username string) access.Actor {
	return access.Actor{ID: id, Username: username, Authenticated: true}
}

func TestCreateComment(t *testing.T) {
	svc, cache := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	p := testutil.SeedPost(t, alice, "post", true, -time.Hour, nil)

	before := time.Now()
	c, err := svc.CreateComment(ctx, asActor(bob.ID, "bob"), p.ID.String(), "Hi")
	require.NoError(t, err)
	assert.Equal(t, "Hi", c.Text)
	assert.Equal(t, p.ID.String(), c.PostID)
	assert.WithinDuration(t, before, c.CreatedAt, 5*time.Second)

	n, warm := cache.Stored(p.ID.String())
	assert.True(t, warm)
	assert.EqualValues(t, 1, n)

	_, err = svc.CreateComment(ctx, access.Anonymous(), p.ID.String(), "Hi")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.CreateComment(ctx, asActor(bob.ID, "bob"), p.ID.String(), "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateComment(ctx, asActor(bob.ID, "bob"), uuid.Must(uuid.NewV4()).String(), "Hi")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateCommentOnHiddenPost(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	draft := testutil.SeedPost(t, alice, "draft", false, -time.Hour, nil)

	// A post hidden from the actor is indistinguishable from an absent one.
	_, err := svc.CreateComment(ctx, asActor(bob.ID, "bob"), draft.ID.String(), "Hi")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// The author can still comment on their own draft.
	_, err = svc.CreateComment(ctx, asActor(alice.ID, "alice"), draft.ID.String(), "note to self")
	assert.NoError(t, err)
}

func TestUpdateCommentOwnerOnly(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	p := testutil.SeedPost(t, alice, "post", true, -time.Hour, nil)
	c := testutil.SeedComment(t, bob, p, "original", time.Now())

	_, err := svc.UpdateComment(ctx, asActor(alice.ID, "alice"), p.ID.String(), c.ID.String(), "hijacked")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	updated, err := svc.UpdateComment(ctx, asActor(bob.ID, "bob"), p.ID.String(), c.ID.String(), "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	// A comment under a different post id resolves to NotFound.
	other := testutil.SeedPost(t, alice, "other", true, -time.Hour, nil)
	_, err = svc.UpdateComment(ctx, asActor(bob.ID, "bob"), other.ID.String(), c.ID.String(), "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	svc, cache := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	p := testutil.SeedPost(t, alice, "post", true, -time.Hour, nil)
	c := testutil.SeedComment(t, bob, p, "bye", time.Now())
	require.NoError(t, cache.Set(ctx, p.ID.String(), 1))

	err := svc.DeleteComment(ctx, asActor(alice.ID, "alice"), p.ID.String(), c.ID.String())
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, svc.DeleteComment(ctx, asActor(bob.ID, "bob"), p.ID.String(), c.ID.String()))
	n, _ := cache.Stored(p.ID.String())
	assert.EqualValues(t, 0, n)

	_, err = svc.GetComment(ctx, asActor(bob.ID, "bob"), p.ID.String(), c.ID.String())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentsOrderedAscending(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	p := testutil.SeedPost(t, alice, "post", true, -time.Hour, nil)

	now := time.Now()
	testutil.SeedComment(t, bob, p, "third", now.Add(-time.Minute))
	testutil.SeedComment(t, bob, p, "first", now.Add(-3*time.Minute))
	testutil.SeedComment(t, bob, p, "second", now.Add(-2*time.Minute))

	comments, err := svc.CommentRepository.FindByPost(ctx, p.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "third", comments[2].Text)
}

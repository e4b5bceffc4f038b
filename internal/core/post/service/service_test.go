package postapp

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
	postPort "scriptum/internal/ports/post"
	"scriptum/internal/testutil"
)

func newService(t *testing.T) (*PostService, *testutil.FakeCountCache) {
	t.Helper()
	testutil.SetupDB(t)
	cache := testutil.NewFakeCountCache()
	svc := NewPostService(
		dbadapter.NewPostRepositoryDatabase(),
		dbadapter.NewCategoryRepositoryDatabase(),
		dbadapter.NewLocationRepositoryDatabase(),
		dbadapter.NewUserRepositoryDatabase(),
		dbadapter.NewCommentRepositoryDatabase(),
		cache,
		10,
	)
	return svc, cache
}

func asActor(id string, username string) access.Actor {
	return access.Actor{
		ID:            uuid.FromStringOrNil(id),
		Username:      username,
		Authenticated: true,
	}
}

func TestListPublishedHidesInvisiblePosts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	hiddenCat := testutil.SeedCategory(t, "drafts", false)

	testutil.SeedPost(t, alice, "visible", true, -time.Hour, nil)
	testutil.SeedPost(t, alice, "unpublished", false, -time.Hour, nil)
	testutil.SeedPost(t, alice, "future", true, time.Hour, nil)
	testutil.SeedPost(t, alice, "hidden-category", true, -time.Hour, hiddenCat)

	page, err := svc.ListPublished(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "visible", page.Posts[0].Title)
	assert.EqualValues(t, 1, page.TotalPosts)
}

func TestListPublishedOrderAndPagination(t *testing.T) {
	svc, _ := newService(t)
	svc.PageSize = 3
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	for i := 0; i < 5; i++ {
		testutil.SeedPost(t, alice, "post", true, -time.Duration(i+1)*time.Hour, nil)
	}

	page1, err := svc.ListPublished(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page1.Posts, 3)
	assert.Equal(t, 2, page1.TotalPages)
	assert.EqualValues(t, 5, page1.TotalPosts)

	// Newest first.
	for i := 1; i < len(page1.Posts); i++ {
		assert.True(t, page1.Posts[i-1].PubDate.After(page1.Posts[i].PubDate))
	}

	page2, err := svc.ListPublished(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Posts, 2)
}

func TestListPublishedAnnotatesCommentCounts(t *testing.T) {
	svc, cache := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	p := testutil.SeedPost(t, alice, "commented", true, -time.Hour, nil)
	testutil.SeedComment(t, bob, p, "one", time.Now().Add(-2*time.Minute))
	testutil.SeedComment(t, bob, p, "two", time.Now().Add(-time.Minute))

	page, err := svc.ListPublished(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.EqualValues(t, 2, page.Posts[0].CommentCount)

	// The cold cache was backfilled from the database.
	stored, warm := cache.Stored(p.ID.String())
	assert.True(t, warm)
	assert.EqualValues(t, 2, stored)
}

func TestListByCategory(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	travel := testutil.SeedCategory(t, "travel", true)
	testutil.SeedCategory(t, "secret", false)
	testutil.SeedPost(t, alice, "in-travel", true, -time.Hour, travel)
	testutil.SeedPost(t, alice, "no-category", true, -time.Hour, nil)

	cat, page, err := svc.ListByCategory(ctx, "travel", 1)
	require.NoError(t, err)
	assert.Equal(t, "travel", cat.Slug)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "in-travel", page.Posts[0].Title)

	_, _, err = svc.ListByCategory(ctx, "unknown-slug", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// An unpublished category is as good as absent.
	_, _, err = svc.ListByCategory(ctx, "secret", 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListByAuthorPrivilegedForOwner(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	testutil.SeedPost(t, alice, "public", true, -time.Hour, nil)
	testutil.SeedPost(t, alice, "draft", false, -time.Hour, nil)
	testutil.SeedPost(t, alice, "scheduled", true, time.Hour, nil)

	owner := asActor(alice.ID.String(), "alice")
	_, ownPage, err := svc.ListByAuthor(ctx, "alice", owner, 1)
	require.NoError(t, err)
	assert.Len(t, ownPage.Posts, 3)

	_, anonPage, err := svc.ListByAuthor(ctx, "alice", access.Anonymous(), 1)
	require.NoError(t, err)
	require.Len(t, anonPage.Posts, 1)
	assert.Equal(t, "public", anonPage.Posts[0].Title)

	_, _, err = svc.ListByAuthor(ctx, "nobody", access.Anonymous(), 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetDetailVisibilityGate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	_ = testutil.SeedUser(t, "bob", false)
	staff := testutil.SeedUser(t, "admin", true)
	draft := testutil.SeedPost(t, alice, "draft", false, -time.Hour, nil)

	// Hidden post is NotFound for anonymous and other users.
	_, _, err := svc.GetDetail(ctx, draft.ID.String(), access.Anonymous())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// The author and staff see it.
	owner := asActor(alice.ID.String(), "alice")
	got, _, err := svc.GetDetail(ctx, draft.ID.String(), owner)
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Title)

	staffActor := access.Actor{ID: staff.ID, Username: "admin", IsStaff: true, Authenticated: true}
	_, _, err = svc.GetDetail(ctx, draft.ID.String(), staffActor)
	assert.NoError(t, err)

	_, _, err = svc.GetDetail(ctx, "00000000-0000-0000-0000-000000000000", owner)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreatePostRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	actor := asActor(alice.ID.String(), "alice")

	pubDate := time.Now().Add(-time.Hour)
	created, err := svc.CreatePost(ctx, actor, postPort.PostInput{
		Title:       "T",
		Text:        "B",
		PubDate:     pubDate,
		IsPublished: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, _, err := svc.GetDetail(ctx, created.ID, access.Anonymous())
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "B", got.Text)
	assert.True(t, got.IsPublished)
	assert.WithinDuration(t, pubDate, got.PubDate, time.Second)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	actor := asActor(alice.ID.String(), "alice")

	_, err := svc.CreatePost(ctx, actor, postPort.PostInput{Title: "", Text: "body"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreatePost(ctx, actor, postPort.PostInput{
		Title:      "t",
		Text:       "b",
		CategoryID: "00000000-0000-0000-0000-000000000000",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreatePost(ctx, access.Anonymous(), postPort.PostInput{Title: "t", Text: "b"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// Nothing was persisted by the failed attempts.
	page, err := svc.ListPublished(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestUpdatePostOwnerOnlyAndIdempotent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	p := testutil.SeedPost(t, alice, "orig", true, -time.Hour, nil)

	in := postPort.PostInput{Title: "edited", Text: "new body", IsPublished: true}

	_, err := svc.UpdatePost(ctx, asActor(bob.ID.String(), "bob"), p.ID.String(), in)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	owner := asActor(alice.ID.String(), "alice")
	first, err := svc.UpdatePost(ctx, owner, p.ID.String(), in)
	require.NoError(t, err)
	second, err := svc.UpdatePost(ctx, owner, p.ID.String(), in)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Text, second.Text)

	got, _, err := svc.GetDetail(ctx, p.ID.String(), owner)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	p := testutil.SeedPost(t, alice, "doomed", true, -time.Hour, nil)

	err := svc.DeletePost(ctx, asActor(bob.ID.String(), "bob"), p.ID.String())
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// Still present after the denied attempt.
	_, _, err = svc.GetDetail(ctx, p.ID.String(), access.Anonymous())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, asActor(alice.ID.String(), "alice"), p.ID.String()))
	_, _, err = svc.GetDetail(ctx, p.ID.String(), access.Anonymous())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreatePostDraftStaysHidden(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	owner := asActor(alice.ID.String(), "alice")

	created, err := svc.CreatePost(ctx, owner, postPort.PostInput{
		Title:       "draft",
		Text:        "work in progress",
		PubDate:     time.Now().Add(-time.Hour),
		IsPublished: false,
	})
	require.NoError(t, err)

	// The draft flag survives the round trip to the database.
	got, _, err := svc.GetDetail(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	_, _, err = svc.GetDetail(ctx, created.ID, access.Anonymous())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	page, err := svc.ListPublished(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestMutateHiddenPostLooksAbsent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	alice := testutil.SeedUser(t, "alice", false)
	bob := testutil.SeedUser(t, "bob", false)
	draft := testutil.SeedPost(t, alice, "draft", false, -time.Hour, nil)

	in := postPort.PostInput{Title: "hijack", Text: "x", IsPublished: true}

	// A post bob cannot see must not reveal itself through Forbidden.
	_, err := svc.UpdatePost(ctx, asActor(bob.ID.String(), "bob"), draft.ID.String(), in)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.DeletePost(ctx, asActor(bob.ID.String(), "bob"), draft.ID.String())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// The owner still edits it as usual.
	updated, err := svc.UpdatePost(ctx, asActor(alice.ID.String(), "alice"), draft.ID.String(), in)
	require.NoError(t, err)
	assert.Equal(t, "hijack", updated.Title)
}

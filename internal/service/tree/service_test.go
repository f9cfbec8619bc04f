package tree_test

import (
	"context"
	"testing"

	"threadnest/internal/config"
	"threadnest/internal/domain"
	"threadnest/internal/repository"
	"threadnest/internal/service/tree"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *repository.MemoryStore
	svc    tree.Service
	postID uuid.UUID

	// four top-level comments in insertion order; a has three children
	a, b, c, d    uuid.UUID
	a1, a2, a3    uuid.UUID
	otherPost     uuid.UUID
	otherPostRoot uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		store:  repository.NewMemoryStore(),
		postID: uuid.New(),
	}
	f.a, f.b, f.c, f.d = uuid.New(), uuid.New(), uuid.New(), uuid.New()
	f.a1, f.a2, f.a3 = uuid.New(), uuid.New(), uuid.New()

	f.store.PutPost(domain.Post{ID: f.postID, Replies: []uuid.UUID{f.a, f.b, f.c, f.d}})
	f.store.PutComment(domain.Comment{ID: f.a, Post: f.postID, Parent: f.postID, ParentKind: domain.ParentPost, Text: "a", Replies: []uuid.UUID{f.a1, f.a2, f.a3}})
	f.store.PutComment(domain.Comment{ID: f.b, Post: f.postID, Parent: f.postID, ParentKind: domain.ParentPost, Text: "b"})
	f.store.PutComment(domain.Comment{ID: f.c, Post: f.postID, Parent: f.postID, ParentKind: domain.ParentPost, Text: "c"})
	f.store.PutComment(domain.Comment{ID: f.d, Post: f.postID, Parent: f.postID, ParentKind: domain.ParentPost, Text: "d"})
	f.store.PutComment(domain.Comment{ID: f.a1, Post: f.postID, Parent: f.a, ParentKind: domain.ParentComment, Text: "a1"})
	f.store.PutComment(domain.Comment{ID: f.a2, Post: f.postID, Parent: f.a, ParentKind: domain.ParentComment, Text: "a2"})
	f.store.PutComment(domain.Comment{ID: f.a3, Post: f.postID, Parent: f.a, ParentKind: domain.ParentComment, Text: "a3"})

	f.otherPost = uuid.New()
	f.otherPostRoot = uuid.New()
	f.store.PutPost(domain.Post{ID: f.otherPost, Replies: []uuid.UUID{f.otherPostRoot}})
	f.store.PutComment(domain.Comment{ID: f.otherPostRoot, Post: f.otherPost, Parent: f.otherPost, ParentKind: domain.ParentPost})

	cfg := &config.Config{TreePageSize: 2, TreeDepth: 3}
	f.svc = tree.NewService(f.store.Posts(), f.store.Comments(), nil, cfg)
	return f
}

func ids(nodes []domain.TreeNode) []uuid.UUID {
	out := make([]uuid.UUID, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestTreeBuild_PageWindowAndContinuation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.a, f.b}, ids(built.Children))

	require.NotNil(t, built.Continuation)
	assert.Equal(t, f.c, built.Continuation.NextCursor)
	assert.Equal(t, 2, built.Continuation.OmittedCount)
	assert.Equal(t, []uuid.UUID{f.c, f.d}, built.Continuation.OmittedIDs)

	// Depth 1 serves the top level only; a's children collapse into a
	// marker on a itself.
	nodeA := built.Children[0]
	assert.Empty(t, nodeA.Children)
	require.NotNil(t, nodeA.Continuation)
	assert.Equal(t, f.a1, nodeA.Continuation.NextCursor)
	assert.Equal(t, 3, nodeA.Continuation.OmittedCount)

	// b has no replies and gets no marker.
	assert.Nil(t, built.Children[1].Continuation)
}

func TestTreeBuild_ResumeAfterCursor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1, After: f.b})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.c, f.d}, ids(built.Children))
	assert.Nil(t, built.Continuation)
}

func TestTreeBuild_UnknownCursorFallsBackToStart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1, After: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.a, f.b}, ids(built.Children))
}

func TestTreeBuild_DepthZeroServesMarkersOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 0})
	require.NoError(t, err)

	assert.Empty(t, built.Children)
	require.NotNil(t, built.Continuation)
	assert.Equal(t, f.a, built.Continuation.NextCursor)
	assert.Equal(t, 4, built.Continuation.OmittedCount)
}

func TestTreeBuild_DefaultsApplied(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Unset page size and negative depth fall back to the configured
	// defaults (2 and 3), so a's children are materialized one page deep.
	built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{Depth: -1})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.a, f.b}, ids(built.Children))

	nodeA := built.Children[0]
	assert.Equal(t, []uuid.UUID{f.a1, f.a2}, ids(nodeA.Children))
	require.NotNil(t, nodeA.Continuation)
	assert.Equal(t, []uuid.UUID{f.a3}, nodeA.Continuation.OmittedIDs)
}

func TestTreeBuild_DeletedNodeKeepsPlace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.store.Comments().MarkDeleted(ctx, []uuid.UUID{f.b}))

	built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1})
	require.NoError(t, err)

	require.Len(t, built.Children, 2)
	assert.Equal(t, f.b, built.Children[1].ID)
	assert.True(t, built.Children[1].IsDeleted)
	assert.Equal(t, "b", built.Children[1].Text)
}

func TestTreeBuild_VanishedChildSkipped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// b's record is gone while the post still lists it; the page comes up
	// short but pagination math over the listed ids is unchanged.
	f.store.Drop(f.b)

	built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{f.a}, ids(built.Children))
	require.NotNil(t, built.Continuation)
	assert.Equal(t, f.c, built.Continuation.NextCursor)
	assert.Equal(t, 2, built.Continuation.OmittedCount)
}

func TestTreeBuild_PostNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Build(context.Background(), uuid.New(), domain.TreeOptions{PageSize: 2, Depth: 1})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestTreeBuild_Subtree(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("rooted at a comment of the post", func(t *testing.T) {
		built, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1, Comment: f.a})
		require.NoError(t, err)

		require.Len(t, built.Children, 1)
		root := built.Children[0]
		assert.Equal(t, f.a, root.ID)
		assert.Equal(t, []uuid.UUID{f.a1, f.a2}, ids(root.Children))
		require.NotNil(t, root.Continuation)
		assert.Equal(t, []uuid.UUID{f.a3}, root.Continuation.OmittedIDs)
	})

	t.Run("comment belongs to another post", func(t *testing.T) {
		_, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1, Comment: f.otherPostRoot})
		assert.ErrorIs(t, err, domain.ErrCommentNotChild)
	})

	t.Run("comment does not exist", func(t *testing.T) {
		_, err := f.svc.Build(ctx, f.postID, domain.TreeOptions{PageSize: 2, Depth: 1, Comment: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

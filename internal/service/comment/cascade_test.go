package comment_test

import (
	"context"
	"testing"

	"threadnest/internal/domain"
	"threadnest/internal/repository"
	"threadnest/internal/service/comment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// seedThread stores a three-level thread:
//
//	root -> {a, b}, a -> {a1}
func seedThread(store *repository.MemoryStore, postID uuid.UUID) (root, a, b, a1 uuid.UUID) {
	root, a, b, a1 = uuid.New(), uuid.New(), uuid.New(), uuid.New()

	store.PutComment(domain.Comment{ID: root, Post: postID, Replies: []uuid.UUID{a, b}})
	store.PutComment(domain.Comment{ID: a, Post: postID, Parent: root, ParentKind: domain.ParentComment, Replies: []uuid.UUID{a1}})
	store.PutComment(domain.Comment{ID: b, Post: postID, Parent: root, ParentKind: domain.ParentComment})
	store.PutComment(domain.Comment{ID: a1, Post: postID, Parent: a, ParentKind: domain.ParentComment})
	return
}

func TestCascadeDelete_MarksAllDescendants(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	postID := uuid.New()
	root, a, b, a1 := seedThread(store, postID)

	svc := comment.NewService(store.Comments(), store.Posts(), nil)

	err := svc.CascadeDelete(ctx, root)
	assert.NoError(t, err)

	for _, id := range []uuid.UUID{a, b, a1} {
		c, err := store.Comments().FindByID(ctx, id)
		assert.NoError(t, err)
		assert.True(t, c.IsDeleted, "descendant %s should be marked deleted", id)
	}

	// The root itself is the caller's responsibility; the cascade only
	// covers descendants.
	c, err := store.Comments().FindByID(ctx, root)
	assert.NoError(t, err)
	assert.False(t, c.IsDeleted)
}

func TestCascadeDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	postID := uuid.New()
	root, a, b, a1 := seedThread(store, postID)

	svc := comment.NewService(store.Comments(), store.Posts(), nil)

	assert.NoError(t, svc.CascadeDelete(ctx, root))
	assert.NoError(t, svc.CascadeDelete(ctx, root))

	for _, id := range []uuid.UUID{a, b, a1} {
		c, _ := store.Comments().FindByID(ctx, id)
		assert.True(t, c.IsDeleted)
	}
}

func TestCascadeDelete_VanishedDescendantTolerated(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	postID := uuid.New()
	root, a, _, a1 := seedThread(store, postID)

	// a's record is gone but root still lists it; the cascade skips the
	// hole and cannot reach a1 through it.
	store.Drop(a)

	svc := comment.NewService(store.Comments(), store.Posts(), nil)
	assert.NoError(t, svc.CascadeDelete(ctx, root))

	c, _ := store.Comments().FindByID(ctx, a1)
	assert.False(t, c.IsDeleted)
}

func TestCascadeDelete_CycleAborts(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	postID := uuid.New()

	a, b := uuid.New(), uuid.New()
	store.PutComment(domain.Comment{ID: a, Post: postID, Replies: []uuid.UUID{b}})
	store.PutComment(domain.Comment{ID: b, Post: postID, Replies: []uuid.UUID{a}})

	svc := comment.NewService(store.Comments(), store.Posts(), nil)

	err := svc.CascadeDelete(ctx, a)
	assert.ErrorIs(t, err, domain.ErrCorruptTree)

	// Progress made before the cycle was detected is kept.
	c, _ := store.Comments().FindByID(ctx, b)
	assert.True(t, c.IsDeleted)
}

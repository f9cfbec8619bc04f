package comment_test

import (
	"context"
	"testing"

	"threadnest/internal/domain"
	"threadnest/internal/mocks"
	"threadnest/internal/repository"
	"threadnest/internal/service/comment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	postID := uuid.New()

	t.Run("Success - reply to post", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		mockPosts := new(mocks.PostRepository)
		mockNotifier := new(mocks.Notifier)

		svc := comment.NewService(mockComments, mockPosts, nil)
		svc.SetNotifier(mockNotifier)

		input := domain.CreateCommentInput{
			Parent:     postID,
			ParentKind: domain.ParentPost,
			Text:       "First!",
		}

		mockPosts.On("FindByID", ctx, postID).Return(&domain.Post{ID: postID}, nil).Once()
		mockComments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Author == authorID && c.Post == postID && c.Parent == postID &&
				c.ParentKind == domain.ParentPost && c.Text == input.Text
		})).Return(nil).Once()
		mockPosts.On("AppendReply", ctx, postID, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()
		mockNotifier.On("NotifyReply", ctx, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()

		created, err := svc.Create(ctx, authorID, input)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, postID, created.Post)
		assert.Empty(t, created.Replies)

		mockComments.AssertExpectations(t)
		mockPosts.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Success - reply to comment inherits post", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		mockPosts := new(mocks.PostRepository)

		svc := comment.NewService(mockComments, mockPosts, nil)

		parentID := uuid.New()
		input := domain.CreateCommentInput{
			Parent:     parentID,
			ParentKind: domain.ParentComment,
			Text:       "Nested reply",
		}

		mockComments.On("FindByID", ctx, parentID).Return(&domain.Comment{ID: parentID, Post: postID}, nil).Once()
		mockComments.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Post == postID && c.Parent == parentID && c.ParentKind == domain.ParentComment
		})).Return(nil).Once()
		mockComments.On("AppendReply", ctx, parentID, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()

		created, err := svc.Create(ctx, authorID, input)

		assert.NoError(t, err)
		assert.Equal(t, postID, created.Post)

		mockComments.AssertExpectations(t)
	})

	t.Run("InvalidParent - parent comment does not exist", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		mockPosts := new(mocks.PostRepository)

		svc := comment.NewService(mockComments, mockPosts, nil)

		parentID := uuid.New()
		mockComments.On("FindByID", ctx, parentID).Return(nil, nil).Once()

		created, err := svc.Create(ctx, authorID, domain.CreateCommentInput{
			Parent:     parentID,
			ParentKind: domain.ParentComment,
			Text:       "orphan",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidParent)
		assert.Nil(t, created)
	})

	t.Run("InvalidParent - unknown parent kind", func(t *testing.T) {
		svc := comment.NewService(new(mocks.CommentRepository), new(mocks.PostRepository), nil)

		created, err := svc.Create(ctx, authorID, domain.CreateCommentInput{
			Parent:     uuid.New(),
			ParentKind: "thread",
			Text:       "?",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidParent)
		assert.Nil(t, created)
	})

	t.Run("Parent vanishes before link - record retired", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		mockPosts := new(mocks.PostRepository)

		svc := comment.NewService(mockComments, mockPosts, nil)

		parentID := uuid.New()
		mockComments.On("FindByID", ctx, parentID).Return(&domain.Comment{ID: parentID, Post: postID}, nil).Once()
		mockComments.On("Create", ctx, mock.AnythingOfType("*domain.Comment")).Return(nil).Once()
		mockComments.On("AppendReply", ctx, parentID, mock.AnythingOfType("uuid.UUID")).Return(domain.ErrCommentNotFound).Once()
		mockComments.On("MarkDeleted", ctx, mock.MatchedBy(func(ids []uuid.UUID) bool {
			return len(ids) == 1
		})).Return(nil).Once()

		created, err := svc.Create(ctx, authorID, domain.CreateCommentInput{
			Parent:     parentID,
			ParentKind: domain.ParentComment,
			Text:       "lost race",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidParent)
		assert.Nil(t, created)

		mockComments.AssertExpectations(t)
	})
}

func TestCommentService_Update(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	commentID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		svc := comment.NewService(mockComments, new(mocks.PostRepository), nil)

		mockComments.On("FindByID", ctx, commentID).Return(&domain.Comment{
			ID: commentID, Author: authorID, Text: "old",
		}, nil).Once()
		mockComments.On("UpdateText", ctx, commentID, "new").Return(nil).Once()

		updated, err := svc.Update(ctx, authorID, commentID, domain.UpdateCommentInput{Text: "new"})

		assert.NoError(t, err)
		assert.Equal(t, "new", updated.Text)

		mockComments.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		svc := comment.NewService(mockComments, new(mocks.PostRepository), nil)

		mockComments.On("FindByID", ctx, commentID).Return(nil, nil).Once()

		updated, err := svc.Update(ctx, authorID, commentID, domain.UpdateCommentInput{Text: "new"})

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
		assert.Nil(t, updated)
	})

	t.Run("NotAuthor", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		svc := comment.NewService(mockComments, new(mocks.PostRepository), nil)

		mockComments.On("FindByID", ctx, commentID).Return(&domain.Comment{
			ID: commentID, Author: uuid.New(),
		}, nil).Once()

		updated, err := svc.Update(ctx, authorID, commentID, domain.UpdateCommentInput{Text: "new"})

		assert.ErrorIs(t, err, domain.ErrNotAuthor)
		assert.Nil(t, updated)
		mockComments.AssertNotCalled(t, "UpdateText", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	postID := uuid.New()

	t.Run("Success - unlinks from parent comment and cascades", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		mockPosts := new(mocks.PostRepository)
		svc := comment.NewService(mockComments, mockPosts, nil)

		parentID := uuid.New()
		commentID := uuid.New()
		target := &domain.Comment{
			ID: commentID, Author: authorID, Post: postID,
			Parent: parentID, ParentKind: domain.ParentComment,
		}

		mockComments.On("FindByID", ctx, commentID).Return(target, nil).Once()
		mockComments.On("RemoveReply", ctx, parentID, commentID).Return(nil).Once()
		mockComments.On("MarkDeleted", ctx, []uuid.UUID{commentID}).Return(nil).Once()
		mockComments.On("FindManyByID", ctx, []uuid.UUID{commentID}).Return([]domain.Comment{
			{ID: commentID, IsDeleted: true},
		}, nil).Once()

		err := svc.Delete(ctx, authorID, commentID)

		assert.NoError(t, err)
		mockComments.AssertExpectations(t)
		mockPosts.AssertNotCalled(t, "RemoveReply", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - top-level comment unlinks from post", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		mockPosts := new(mocks.PostRepository)
		svc := comment.NewService(mockComments, mockPosts, nil)

		commentID := uuid.New()
		target := &domain.Comment{
			ID: commentID, Author: authorID, Post: postID,
			Parent: postID, ParentKind: domain.ParentPost,
		}

		mockComments.On("FindByID", ctx, commentID).Return(target, nil).Once()
		mockPosts.On("RemoveReply", ctx, postID, commentID).Return(nil).Once()
		mockComments.On("MarkDeleted", ctx, []uuid.UUID{commentID}).Return(nil).Once()
		mockComments.On("FindManyByID", ctx, []uuid.UUID{commentID}).Return([]domain.Comment{
			{ID: commentID, IsDeleted: true},
		}, nil).Once()

		err := svc.Delete(ctx, authorID, commentID)

		assert.NoError(t, err)
		mockComments.AssertExpectations(t)
		mockPosts.AssertExpectations(t)
	})

	t.Run("NotAuthor", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		svc := comment.NewService(mockComments, new(mocks.PostRepository), nil)

		commentID := uuid.New()
		mockComments.On("FindByID", ctx, commentID).Return(&domain.Comment{
			ID: commentID, Author: uuid.New(),
		}, nil).Once()

		err := svc.Delete(ctx, authorID, commentID)

		assert.ErrorIs(t, err, domain.ErrNotAuthor)
		mockComments.AssertNotCalled(t, "MarkDeleted", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockComments := new(mocks.CommentRepository)
		svc := comment.NewService(mockComments, new(mocks.PostRepository), nil)

		commentID := uuid.New()
		mockComments.On("FindByID", ctx, commentID).Return(nil, nil).Once()

		err := svc.Delete(ctx, authorID, commentID)

		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})
}

// Runs a create/delete sequence against the real store semantics and checks
// that every reply list and its counter stay in step at every step.
func TestCommentLifecycle_RepliesCountTracksList(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	authorID := uuid.New()
	postID := uuid.New()
	store.PutPost(domain.Post{ID: postID, Author: authorID})

	svc := comment.NewService(store.Comments(), store.Posts(), nil)

	var known []uuid.UUID
	checkCounts := func(t *testing.T) {
		t.Helper()
		post, err := store.Posts().FindByID(ctx, postID)
		require.NoError(t, err)
		assert.Equal(t, len(post.Replies), post.RepliesCount, "post counter drifted from its reply list")
		for _, id := range known {
			c, err := store.Comments().FindByID(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, len(c.Replies), c.RepliesCount, "comment %s counter drifted from its reply list", id)
		}
	}
	create := func(t *testing.T, parent uuid.UUID, kind domain.ParentKind) uuid.UUID {
		t.Helper()
		c, err := svc.Create(ctx, authorID, domain.CreateCommentInput{Parent: parent, ParentKind: kind, Text: "x"})
		require.NoError(t, err)
		known = append(known, c.ID)
		checkCounts(t)
		return c.ID
	}

	c1 := create(t, postID, domain.ParentPost)
	c2 := create(t, c1, domain.ParentComment)
	create(t, c1, domain.ParentComment)
	create(t, c2, domain.ParentComment)

	require.NoError(t, svc.Delete(ctx, authorID, c2))
	checkCounts(t)

	// Deleting c1 cascades over its surviving subtree; the soft-deleted
	// records keep their lists and counters intact.
	require.NoError(t, svc.Delete(ctx, authorID, c1))
	checkCounts(t)

	post, err := store.Posts().FindByID(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, post.Replies)
	assert.Zero(t, post.RepliesCount)
}

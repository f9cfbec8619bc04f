package comment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"threadnest/internal/domain"
	"threadnest/internal/repository"
)

// Notifier receives the created comment after a successful reply; failures
// are logged, never surfaced to the commenting user.
type Notifier interface {
	NotifyReply(ctx context.Context, c *domain.Comment) error
}

type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	Update(ctx context.Context, userID, commentID uuid.UUID, input domain.UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
	CascadeDelete(ctx context.Context, commentID uuid.UUID) error
	SetNotifier(n Notifier)
}

type service struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	redis    *redis.Client
	notifier Notifier
}

func NewService(comments repository.CommentRepository, posts repository.PostRepository, redis *redis.Client) Service {
	return &service{
		comments: comments,
		posts:    posts,
		redis:    redis,
	}
}

func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

// resolveParent confirms the claimed parent exists and yields the owning
// post id, dispatching on the parent kind tag.
func (s *service) resolveParent(ctx context.Context, parentID uuid.UUID, kind domain.ParentKind) (uuid.UUID, error) {
	switch kind {
	case domain.ParentComment:
		parent, err := s.comments.FindByID(ctx, parentID)
		if err != nil {
			return uuid.Nil, err
		}
		if parent == nil {
			return uuid.Nil, domain.ErrInvalidParent
		}
		return parent.Post, nil
	case domain.ParentPost:
		post, err := s.posts.FindByID(ctx, parentID)
		if err != nil {
			return uuid.Nil, err
		}
		if post == nil {
			return uuid.Nil, domain.ErrInvalidParent
		}
		return post.ID, nil
	default:
		return uuid.Nil, domain.ErrInvalidParent
	}
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	postID, err := s.resolveParent(ctx, input.Parent, input.ParentKind)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:         uuid.New(),
		Author:     authorID,
		Post:       postID,
		Parent:     input.Parent,
		ParentKind: input.ParentKind,
		Text:       input.Text,
		Replies:    []uuid.UUID{},
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Link into the parent's reply list. On failure the fresh record must
	// not survive as an orphan, so it is retired before reporting.
	if input.ParentKind == domain.ParentComment {
		err = s.comments.AppendReply(ctx, input.Parent, comment.ID)
	} else {
		err = s.posts.AppendReply(ctx, postID, comment.ID)
	}
	if err != nil {
		_ = s.comments.MarkDeleted(ctx, []uuid.UUID{comment.ID})
		if errors.Is(err, domain.ErrCommentNotFound) || errors.Is(err, domain.ErrPostNotFound) {
			return nil, domain.ErrInvalidParent
		}
		return nil, err
	}

	s.invalidateTree(ctx, postID)

	if s.notifier != nil {
		if err := s.notifier.NotifyReply(ctx, comment); err != nil {
			log.Printf("reply notification failed for comment %s: %v", comment.ID, err)
		}
	}

	return comment, nil
}

func (s *service) Update(ctx context.Context, userID, commentID uuid.UUID, input domain.UpdateCommentInput) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.Author != userID {
		return nil, domain.ErrNotAuthor
	}

	if err := s.comments.UpdateText(ctx, commentID, input.Text); err != nil {
		return nil, err
	}
	comment.Text = input.Text

	s.invalidateTree(ctx, comment.Post)

	return comment, nil
}

func (s *service) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrCommentNotFound
	}
	if comment.Author != userID {
		return domain.ErrNotAuthor
	}

	// Unlink first; the parent's replies_count only moves together with a
	// successful removal.
	if comment.ParentKind == domain.ParentComment {
		err = s.comments.RemoveReply(ctx, comment.Parent, comment.ID)
	} else {
		err = s.posts.RemoveReply(ctx, comment.Post, comment.ID)
	}
	if err != nil {
		return err
	}

	if err := s.comments.MarkDeleted(ctx, []uuid.UUID{comment.ID}); err != nil {
		return err
	}

	if err := s.CascadeDelete(ctx, comment.ID); err != nil {
		return err
	}

	s.invalidateTree(ctx, comment.Post)

	return nil
}

func (s *service) invalidateTree(ctx context.Context, postID uuid.UUID) {
	if s.redis == nil {
		return
	}
	pattern := fmt.Sprintf("tree:%s:*", postID)
	keys, _ := s.redis.Keys(ctx, pattern).Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}

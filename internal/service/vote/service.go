package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"threadnest/internal/domain"
	"threadnest/internal/repository"
)

var ErrInvalidVote = errors.New("vote must be -1, 0 or 1")

// Service records per-user comment votes; the resulting totals are display
// metadata read by the tree builder, not a core invariant.
type Service interface {
	Vote(ctx context.Context, userID, commentID uuid.UUID, value int) error
}

type service struct {
	comments repository.CommentRepository
	votes    repository.VoteRepository
	redis    *redis.Client
}

func NewService(comments repository.CommentRepository, votes repository.VoteRepository, redis *redis.Client) Service {
	return &service{comments: comments, votes: votes, redis: redis}
}

func (s *service) Vote(ctx context.Context, userID, commentID uuid.UUID, value int) error {
	if value < -1 || value > 1 {
		return ErrInvalidVote
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.IsDeleted {
		return domain.ErrCommentNotFound
	}

	if err := s.votes.Set(ctx, commentID, userID, value); err != nil {
		return err
	}

	// Cached tree pages render the vote total, so a vote busts them the
	// same way a comment mutation does.
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

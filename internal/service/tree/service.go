package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"threadnest/internal/config"
	"threadnest/internal/domain"
	"threadnest/internal/repository"
)

const cacheTTL = time.Minute

// Service materializes bounded comment trees. Reads are pure: they take no
// locks across the traversal and tolerate nodes vanishing between the
// parent fetch and a child fetch.
type Service interface {
	Build(ctx context.Context, postID uuid.UUID, opts domain.TreeOptions) (*domain.Tree, error)
}

type service struct {
	posts           repository.PostRepository
	comments        repository.CommentRepository
	redis           *redis.Client
	defaultPageSize int
	defaultDepth    int
}

func NewService(posts repository.PostRepository, comments repository.CommentRepository, redis *redis.Client, cfg *config.Config) Service {
	return &service{
		posts:           posts,
		comments:        comments,
		redis:           redis,
		defaultPageSize: cfg.TreePageSize,
		defaultDepth:    cfg.TreeDepth,
	}
}

func (s *service) Build(ctx context.Context, postID uuid.UUID, opts domain.TreeOptions) (*domain.Tree, error) {
	// Display-tuning parameters default permissively; depth 0 is a valid
	// request ("markers only") and is not defaulted away.
	if opts.PageSize < 1 {
		opts.PageSize = s.defaultPageSize
	}
	if opts.Depth < 0 {
		opts.Depth = s.defaultDepth
	}

	cacheKey := fmt.Sprintf("tree:%s:%s:%d:%d:%s", postID, opts.Comment, opts.PageSize, opts.Depth, opts.After)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var tree domain.Tree
			if json.Unmarshal([]byte(cached), &tree) == nil {
				return &tree, nil
			}
		}
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}

	tree := &domain.Tree{}

	if opts.Comment != uuid.Nil {
		// Subtree request: the claimed root must actually belong to the post.
		root, err := s.comments.FindByID(ctx, opts.Comment)
		if err != nil {
			return nil, err
		}
		if root == nil {
			return nil, domain.ErrCommentNotFound
		}
		if root.Post != postID {
			return nil, domain.ErrCommentNotChild
		}

		node := toNode(*root)
		node.Children, node.Continuation, err = s.level(ctx, root.Replies, opts.After, opts.PageSize, opts.Depth)
		if err != nil {
			return nil, err
		}
		tree.Children = []domain.TreeNode{node}
	} else {
		tree.Children, tree.Continuation, err = s.level(ctx, post.Replies, opts.After, opts.PageSize, opts.Depth)
		if err != nil {
			return nil, err
		}
	}

	if s.redis != nil {
		if raw, err := json.Marshal(tree); err == nil {
			_ = s.redis.Set(ctx, cacheKey, raw, cacheTTL).Err()
		}
	}

	return tree, nil
}

package post

import (
	"context"

	"github.com/google/uuid"

	"threadnest/internal/domain"
	"threadnest/internal/repository"
)

type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)
}

type service struct {
	posts repository.PostRepository
}

func NewService(posts repository.PostRepository) Service {
	return &service{posts: posts}
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		ID:      uuid.New(),
		Author:  authorID,
		Title:   input.Title,
		Text:    input.Text,
		Replies: []uuid.UUID{},
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

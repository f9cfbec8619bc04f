package mocks

import (
	"context"

	"threadnest/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *PostRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *PostRepository) AppendReply(ctx context.Context, postID, childID uuid.UUID) error {
	args := m.Called(ctx, postID, childID)
	return args.Error(0)
}

func (m *PostRepository) RemoveReply(ctx context.Context, postID, childID uuid.UUID) error {
	args := m.Called(ctx, postID, childID)
	return args.Error(0)
}

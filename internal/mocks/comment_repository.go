package mocks

import (
	"context"

	"threadnest/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) FindManyByID(ctx context.Context, ids []uuid.UUID) ([]domain.Comment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	args := m.Called(ctx, id, text)
	return args.Error(0)
}

func (m *CommentRepository) AppendReply(ctx context.Context, parentID, childID uuid.UUID) error {
	args := m.Called(ctx, parentID, childID)
	return args.Error(0)
}

func (m *CommentRepository) RemoveReply(ctx context.Context, parentID, childID uuid.UUID) error {
	args := m.Called(ctx, parentID, childID)
	return args.Error(0)
}

func (m *CommentRepository) MarkDeleted(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

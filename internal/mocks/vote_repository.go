package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type VoteRepository struct {
	mock.Mock
}

func (m *VoteRepository) Set(ctx context.Context, commentID, userID uuid.UUID, value int) error {
	args := m.Called(ctx, commentID, userID, value)
	return args.Error(0)
}

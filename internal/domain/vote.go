package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one user's vote on a comment. Value is -1, 0 or 1; 0 clears a
// previous vote. The comment's Votes total is display metadata maintained
// alongside, not a core invariant.
type Vote struct {
	CommentID uuid.UUID `json:"comment_id" db:"comment_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Value     int       `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type VoteInput struct {
	Value int `json:"value" validate:"oneof=-1 0 1"`
}

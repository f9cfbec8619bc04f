package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParentKind discriminates the polymorphic parent reference of a comment.
type ParentKind string

const (
	ParentPost    ParentKind = "post"
	ParentComment ParentKind = "comment"
)

func (k ParentKind) IsValid() bool {
	return k == ParentPost || k == ParentComment
}

// Comment is a single node of a discussion thread. Replies holds the ids of
// direct children in insertion order; that order is the cursor source for
// tree pagination. RepliesCount is adjusted in the same statement as every
// Replies mutation and never drifts from len(Replies).
type Comment struct {
	ID           uuid.UUID   `json:"id" db:"comment_id"`
	Author       uuid.UUID   `json:"author" db:"author_id"`
	Post         uuid.UUID   `json:"post" db:"post_id"`
	Parent       uuid.UUID   `json:"parent" db:"parent_id"`
	ParentKind   ParentKind  `json:"parent_kind" db:"parent_kind"`
	Text         string      `json:"text" db:"text"`
	Replies      []uuid.UUID `json:"replies" db:"-"`
	RepliesCount int         `json:"replies_count" db:"replies_count"`
	IsDeleted    bool        `json:"is_deleted" db:"is_deleted"`
	Votes        int         `json:"votes" db:"votes"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

type CreateCommentInput struct {
	Parent     uuid.UUID  `json:"parent" validate:"required"`
	ParentKind ParentKind `json:"parent_kind" validate:"required,oneof=post comment"`
	Text       string     `json:"text" validate:"required,min=1,max=10000"`
}

type UpdateCommentInput struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is a top-level content item. Its Replies list holds the ids of
// top-level comments in insertion order, maintained the same way a
// comment's reply list is.
type Post struct {
	ID           uuid.UUID   `json:"id" db:"post_id"`
	Author       uuid.UUID   `json:"author" db:"author_id"`
	Title        string      `json:"title" db:"title"`
	Text         string      `json:"text" db:"text"`
	Replies      []uuid.UUID `json:"replies" db:"-"`
	RepliesCount int         `json:"replies_count" db:"replies_count"`
	Votes        int         `json:"votes" db:"votes"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	DeletedAt    *time.Time  `json:"-" db:"deleted_at"`
}

type CreatePostInput struct {
	Title string `json:"title" validate:"required,min=1,max=300"`
	Text  string `json:"text" validate:"max=40000"`
}

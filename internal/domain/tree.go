package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tree is a bounded slice of a discussion: the paged top-level children of
// the requested root plus the root-level continuation, if any.
type Tree struct {
	Children     []TreeNode    `json:"children"`
	Continuation *Continuation `json:"continuation,omitempty"`
}

// TreeNode is one rendered node of a comment tree. Deleted nodes stay in
// the tree so pagination counts and surviving children remain correct;
// their text is tombstoned at the presentation boundary, not here.
type TreeNode struct {
	ID           uuid.UUID     `json:"id"`
	Author       uuid.UUID     `json:"author"`
	Text         string        `json:"text"`
	Votes        int           `json:"votes"`
	IsDeleted    bool          `json:"is_deleted"`
	CreatedAt    time.Time     `json:"created_at"`
	Children     []TreeNode    `json:"children"`
	Continuation *Continuation `json:"continuation,omitempty"`
}

// Continuation marks siblings omitted by the page window. It carries the
// whole omitted suffix so a client can request any of them directly.
type Continuation struct {
	NextCursor   uuid.UUID   `json:"next_cursor"`
	OmittedCount int         `json:"omitted_count"`
	OmittedIDs   []uuid.UUID `json:"omitted_ids"`
}

// TreeOptions tunes a tree fetch. Zero PageSize and negative Depth fall
// back to configured defaults; Depth == 0 is a valid request meaning
// "markers only, no descent".
type TreeOptions struct {
	PageSize int
	Depth    int
	After    uuid.UUID // resume cursor: start immediately after this sibling
	Comment  uuid.UUID // optional subtree root; must belong to the post
}

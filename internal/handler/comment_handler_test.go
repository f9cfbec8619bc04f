package handler

import (
	"testing"
	"time"

	"threadnest/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRenderNodes_TombstonesDeletedRecursively(t *testing.T) {
	author := uuid.New()
	grandchild := domain.TreeNode{ID: uuid.New(), Author: author, Text: "still here"}
	child := domain.TreeNode{
		ID: uuid.New(), Author: author, Text: "gone",
		IsDeleted: true,
		Children:  []domain.TreeNode{grandchild},
	}
	root := domain.TreeNode{
		ID: uuid.New(), Author: author, Text: "hello",
		Votes:     3,
		CreatedAt: time.Now(),
		Children:  []domain.TreeNode{child},
	}

	rendered := renderNodes([]domain.TreeNode{root})

	assert.Equal(t, "hello", rendered[0].Text)
	assert.Equal(t, author, rendered[0].Author)

	tombstoned := rendered[0].Children[0]
	assert.Equal(t, "[deleted]", tombstoned.Text)
	assert.Equal(t, uuid.Nil, tombstoned.Author)
	assert.True(t, tombstoned.IsDeleted)

	// Children of a deleted node survive untouched.
	assert.Equal(t, "still here", tombstoned.Children[0].Text)
	assert.Equal(t, author, tombstoned.Children[0].Author)
}

func TestRenderTree_PreservesContinuation(t *testing.T) {
	next := uuid.New()
	tree := &domain.Tree{
		Children: []domain.TreeNode{},
		Continuation: &domain.Continuation{
			NextCursor:   next,
			OmittedCount: 1,
			OmittedIDs:   []uuid.UUID{next},
		},
	}

	rendered := renderTree(tree)

	assert.NotNil(t, rendered.Continuation)
	assert.Equal(t, next, rendered.Continuation.NextCursor)
}

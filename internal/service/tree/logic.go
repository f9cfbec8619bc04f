package tree

import (
	"context"

	"github.com/google/uuid"

	"threadnest/internal/domain"
)

// level selects one page of a node's reply list and recurses into the
// selected children with one depth unit less.
//
// The window starts immediately after the resume cursor; an unknown cursor
// (the sibling may have been hard-removed by a delete) falls back to the
// start of the list. Everything past the window is the omitted suffix and
// becomes the continuation marker. At depth 0 nothing is served and the
// whole remaining suffix goes into the marker, so clients can page deeper
// on demand.
func (s *service) level(ctx context.Context, replies []uuid.UUID, after uuid.UUID, pageSize, depth int) ([]domain.TreeNode, *domain.Continuation, error) {
	start := 0
	if after != uuid.Nil {
		for i, id := range replies {
			if id == after {
				start = i + 1
				break
			}
		}
	}

	rest := replies[start:]
	if len(rest) == 0 {
		return []domain.TreeNode{}, nil, nil
	}
	if depth == 0 {
		return []domain.TreeNode{}, continuation(rest), nil
	}

	window := rest
	if len(window) > pageSize {
		window = window[:pageSize]
	}
	omitted := rest[len(window):]

	// Bulk fetch preserves the stored order; a child deleted out from under
	// us between the parent read and this fetch is simply absent.
	docs, err := s.comments.FindManyByID(ctx, window)
	if err != nil {
		return nil, nil, err
	}

	nodes := make([]domain.TreeNode, 0, len(docs))
	for i := range docs {
		node := toNode(docs[i])
		node.Children, node.Continuation, err = s.level(ctx, docs[i].Replies, uuid.Nil, pageSize, depth-1)
		if err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, node)
	}

	var cont *domain.Continuation
	if len(omitted) > 0 {
		cont = continuation(omitted)
	}
	return nodes, cont, nil
}

// continuation builds the marker for an omitted suffix: the first omitted
// id doubles as the next resume cursor.
func continuation(omitted []uuid.UUID) *domain.Continuation {
	ids := append([]uuid.UUID(nil), omitted...)
	return &domain.Continuation{
		NextCursor:   ids[0],
		OmittedCount: len(ids),
		OmittedIDs:   ids,
	}
}

// toNode keeps deleted comments in place; tombstoning their text is the
// presentation layer's job, since dropping them here would corrupt
// pagination counts and orphan surviving children.
func toNode(c domain.Comment) domain.TreeNode {
	return domain.TreeNode{
		ID:        c.ID,
		Author:    c.Author,
		Text:      c.Text,
		Votes:     c.Votes,
		IsDeleted: c.IsDeleted,
		CreatedAt: c.CreatedAt,
		Children:  []domain.TreeNode{},
	}
}

package comment

import (
	"context"
	"log"

	"github.com/google/uuid"

	"threadnest/internal/domain"
)

// CascadeDelete marks the whole descendant closure of commentID deleted,
// level by level, visiting every descendant exactly once. Re-running on an
// already-deleted subtree is a no-op. A revisited id means the reply graph
// is not a tree: the traversal aborts with ErrCorruptTree, keeping the
// levels already marked (partial progress is documented, not rolled back).
func (s *service) CascadeDelete(ctx context.Context, commentID uuid.UUID) error {
	visited := map[uuid.UUID]struct{}{commentID: {}}
	level := []uuid.UUID{commentID}

	for len(level) > 0 {
		docs, err := s.comments.FindManyByID(ctx, level)
		if err != nil {
			return err
		}

		var next []uuid.UUID
		for _, doc := range docs {
			for _, child := range doc.Replies {
				if _, seen := visited[child]; seen {
					log.Printf("corrupt reply graph: %s revisited while cascading delete of %s; manual remediation required", child, commentID)
					return domain.ErrCorruptTree
				}
				visited[child] = struct{}{}
				next = append(next, child)
			}
		}

		if len(next) > 0 {
			if err := s.comments.MarkDeleted(ctx, next); err != nil {
				return err
			}
		}
		level = next
	}

	return nil
}

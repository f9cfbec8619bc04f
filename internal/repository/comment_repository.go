package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"threadnest/internal/domain"
)

// CommentRepository is the comment store. Lookups return (nil, nil) for an
// absent id; every other failure is a *domain.StorageError. AppendReply and
// RemoveReply mutate the reply list and replies_count as one atomic
// statement, so concurrent mutations on the same parent never race a
// read-modify-write cycle and the count cannot drift from the list.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	// FindManyByID returns the found subset in the requested order;
	// ids that vanished concurrently are simply absent.
	FindManyByID(ctx context.Context, ids []uuid.UUID) ([]domain.Comment, error)
	UpdateText(ctx context.Context, id uuid.UUID, text string) error
	AppendReply(ctx context.Context, parentID, childID uuid.UUID) error
	RemoveReply(ctx context.Context, parentID, childID uuid.UUID) error
	MarkDeleted(ctx context.Context, ids []uuid.UUID) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `comment_id, author_id, post_id, parent_id, parent_kind, text, replies, replies_count, is_deleted, votes, created_at`

func scanComment(row sqlx.ColScanner) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID, &c.Author, &c.Post, &c.Parent, &c.ParentKind, &c.Text,
		pq.GenericArray{A: &c.Replies}, &c.RepliesCount, &c.IsDeleted, &c.Votes, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, author_id, post_id, parent_id, parent_kind, text)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.Author, comment.Post, comment.Parent, comment.ParentKind, comment.Text,
	).Scan(&comment.CreatedAt)
	return storageErr("create comment", err)
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1`

	c, err := scanComment(r.db.QueryRowxContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find comment", err)
	}
	return c, nil
}

func (r *commentRepository) FindManyByID(ctx context.Context, ids []uuid.UUID) ([]domain.Comment, error) {
	if len(ids) == 0 {
		return []domain.Comment{}, nil
	}

	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = ANY($1)`

	rows, err := r.db.QueryxContext(ctx, query, pq.GenericArray{A: ids})
	if err != nil {
		return nil, storageErr("find comments", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]domain.Comment, len(ids))
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, storageErr("scan comment", err)
		}
		byID[c.ID] = *c
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("find comments", err)
	}

	comments := make([]domain.Comment, 0, len(byID))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	query := `UPDATE comments SET text = $2 WHERE comment_id = $1`

	res, err := r.db.ExecContext(ctx, query, id, text)
	if err != nil {
		return storageErr("update comment text", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) AppendReply(ctx context.Context, parentID, childID uuid.UUID) error {
	// The membership guard keeps the append idempotent under a retried
	// request; list and count move in the same statement.
	query := `
		UPDATE comments
		SET replies = array_append(replies, $2), replies_count = replies_count + 1
		WHERE comment_id = $1 AND NOT ($2 = ANY(replies))`

	res, err := r.db.ExecContext(ctx, query, parentID, childID)
	if err != nil {
		return storageErr("append reply", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) RemoveReply(ctx context.Context, parentID, childID uuid.UUID) error {
	// Count only moves when the child was actually present.
	query := `
		UPDATE comments
		SET replies = array_remove(replies, $2), replies_count = replies_count - 1
		WHERE comment_id = $1 AND $2 = ANY(replies)`

	_, err := r.db.ExecContext(ctx, query, parentID, childID)
	return storageErr("remove reply", err)
}

func (r *commentRepository) MarkDeleted(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE comments SET is_deleted = TRUE WHERE comment_id = ANY($1)`

	_, err := r.db.ExecContext(ctx, query, pq.GenericArray{A: ids})
	return storageErr("mark comments deleted", err)
}

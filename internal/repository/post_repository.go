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

// PostRepository maintains post records and their top-level reply lists
// with the same atomic append/remove semantics as the comment store.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	AppendReply(ctx context.Context, postID, childID uuid.UUID) error
	RemoveReply(ctx context.Context, postID, childID uuid.UUID) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (post_id, author_id, title, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		post.ID, post.Author, post.Title, post.Text,
	).Scan(&post.CreatedAt)
	return storageErr("create post", err)
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := `
		SELECT post_id, author_id, title, text, replies, replies_count, votes, created_at
		FROM posts WHERE post_id = $1 AND deleted_at IS NULL`

	var p domain.Post
	err := r.db.QueryRowxContext(ctx, query, id).Scan(
		&p.ID, &p.Author, &p.Title, &p.Text,
		pq.GenericArray{A: &p.Replies}, &p.RepliesCount, &p.Votes, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find post", err)
	}
	return &p, nil
}

func (r *postRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE post_id = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, storageErr("post exists", err)
}

func (r *postRepository) AppendReply(ctx context.Context, postID, childID uuid.UUID) error {
	query := `
		UPDATE posts
		SET replies = array_append(replies, $2), replies_count = replies_count + 1
		WHERE post_id = $1 AND NOT ($2 = ANY(replies))`

	res, err := r.db.ExecContext(ctx, query, postID, childID)
	if err != nil {
		return storageErr("append post reply", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) RemoveReply(ctx context.Context, postID, childID uuid.UUID) error {
	query := `
		UPDATE posts
		SET replies = array_remove(replies, $2), replies_count = replies_count - 1
		WHERE post_id = $1 AND $2 = ANY(replies)`

	_, err := r.db.ExecContext(ctx, query, postID, childID)
	return storageErr("remove post reply", err)
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// VoteRepository maintains per-user comment votes and keeps the comment's
// display total in step inside one transaction.
type VoteRepository interface {
	Set(ctx context.Context, commentID, userID uuid.UUID, value int) error
}

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Set(ctx context.Context, commentID, userID uuid.UUID, value int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin vote tx", err)
	}
	defer tx.Rollback()

	var old int
	err = tx.GetContext(ctx, &old,
		`SELECT value FROM comment_votes WHERE comment_id = $1 AND user_id = $2 FOR UPDATE`,
		commentID, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return storageErr("read vote", err)
	}

	if value == 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM comment_votes WHERE comment_id = $1 AND user_id = $2`,
			commentID, userID)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO comment_votes (comment_id, user_id, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (comment_id, user_id) DO UPDATE SET value = EXCLUDED.value`,
			commentID, userID, value)
	}
	if err != nil {
		return storageErr("write vote", err)
	}

	if delta := value - old; delta != 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE comments SET votes = votes + $2 WHERE comment_id = $1`,
			commentID, delta)
		if err != nil {
			return storageErr("apply vote delta", err)
		}
	}

	return storageErr("commit vote", tx.Commit())
}

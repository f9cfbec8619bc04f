package repository

import (
	"github.com/jmoiron/sqlx"

	"threadnest/internal/domain"
)

type Repositories struct {
	User         UserRepository
	Post         PostRepository
	Comment      CommentRepository
	Vote         VoteRepository
	Notification NotificationRepository
	Media        MediaRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		Comment:      NewCommentRepository(db),
		Vote:         NewVoteRepository(db),
		Notification: NewNotificationRepository(db),
		Media:        NewMediaRepository(db),
		Session:      NewSessionRepository(db),
	}
}

// storageErr tags persistence failures so callers can tell a data-state
// condition (nil, nil lookup miss) from an infrastructure one.
func storageErr(op string, err error) error {
	return domain.WrapStorage(op, err)
}

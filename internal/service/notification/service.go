package notification

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"threadnest/internal/domain"
	"threadnest/internal/repository"
	"threadnest/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	NotifyReply(ctx context.Context, c *domain.Comment) error
}

type service struct {
	notifs   repository.NotificationRepository
	users    repository.UserRepository
	comments repository.CommentRepository
	posts    repository.PostRepository
	emailSvc email.Service
}

func NewService(
	notifs repository.NotificationRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	posts repository.PostRepository,
	emailSvc email.Service,
) Service {
	return &service{
		notifs:   notifs,
		users:    users,
		comments: comments,
		posts:    posts,
		emailSvc: emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifs.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifs.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.notifs.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifs.MarkAllAsRead(ctx, userID)
}

// NotifyReply notifies the author of the parent node about a new reply.
// Self-replies are skipped; email delivery is best effort.
func (s *service) NotifyReply(ctx context.Context, c *domain.Comment) error {
	var (
		recipient uuid.UUID
		notifType domain.NotificationType
		title     string
	)

	if c.ParentKind == domain.ParentComment {
		parent, err := s.comments.FindByID(ctx, c.Parent)
		if err != nil {
			return err
		}
		if parent == nil {
			return nil
		}
		recipient = parent.Author
		notifType = domain.NotifCommentReply
		title = "New reply to your comment"
	} else {
		post, err := s.posts.FindByID(ctx, c.Post)
		if err != nil {
			return err
		}
		if post == nil {
			return nil
		}
		recipient = post.Author
		notifType = domain.NotifPostReply
		title = "New comment on your post"
	}

	if recipient == c.Author {
		return nil
	}

	data, _ := json.Marshal(map[string]string{
		"comment_id": c.ID.String(),
		"post_id":    c.Post.String(),
		"parent_id":  c.Parent.String(),
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  recipient,
		Type:    notifType,
		Title:   title,
		Message: excerpt(c.Text, 140),
		Data:    data,
	}
	if err := s.notifs.Create(ctx, notif); err != nil {
		return err
	}

	if user, err := s.users.GetByID(ctx, recipient); err == nil && user != nil {
		_ = s.emailSvc.SendReplyEmail(ctx, user.Email, user.Username, notif.Message)
	}

	return nil
}

func excerpt(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}

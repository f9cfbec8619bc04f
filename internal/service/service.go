package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"threadnest/internal/config"
	"threadnest/internal/repository"
	"threadnest/internal/service/auth"
	"threadnest/internal/service/comment"
	"threadnest/internal/service/email"
	"threadnest/internal/service/media"
	"threadnest/internal/service/notification"
	"threadnest/internal/service/post"
	"threadnest/internal/service/tree"
	"threadnest/internal/service/vote"
)

type Services struct {
	Auth         auth.Service
	Post         post.Service
	Comment      comment.Service
	Tree         tree.Service
	Vote         vote.Service
	Notification notification.Service
	Media        media.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	notificationService := notification.NewService(repos.Notification, repos.User, repos.Comment, repos.Post, emailService)

	commentService := comment.NewService(repos.Comment, repos.Post, redisClient)
	commentService.SetNotifier(notificationService)

	treeService := tree.NewService(repos.Post, repos.Comment, redisClient, cfg)
	postService := post.NewService(repos.Post)
	voteService := vote.NewService(repos.Comment, repos.Vote, redisClient)
	mediaService := media.NewService(repos.Media, repos.User, minioClient, cfg)

	return &Services{
		Auth:         authService,
		Post:         postService,
		Comment:      commentService,
		Tree:         treeService,
		Vote:         voteService,
		Notification: notificationService,
		Media:        mediaService,
		Email:        emailService,
	}
}

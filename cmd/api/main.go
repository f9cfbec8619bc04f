package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"threadnest/internal/config"
	"threadnest/internal/handler"
	"threadnest/internal/middleware"
	"threadnest/internal/repository"
	"threadnest/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		AppName:      "threadnest",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	setupRoutes(app, handlers, services)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/password-reset/request", h.Auth.RequestPasswordReset)
	authGroup.Post("/password-reset", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)

	authRequired := middleware.AuthRequired(services.Auth)
	authGroup.Get("/me", authRequired, h.Auth.Me)

	posts := api.Group("/posts")
	posts.Post("/", authRequired, h.Post.Create)
	posts.Get("/:postId", h.Post.Get)
	posts.Get("/:postId/comments", h.Comment.Tree)

	comments := api.Group("/comments")
	comments.Post("/", authRequired, h.Comment.Create)
	comments.Put("/:commentId", authRequired, h.Comment.Update)
	comments.Delete("/:commentId", authRequired, h.Comment.Delete)
	comments.Post("/:commentId/vote", authRequired, h.Comment.Vote)

	notifications := api.Group("/notifications", authRequired)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:notificationId/read", h.Notification.MarkAsRead)
	notifications.Patch("/read-all", h.Notification.MarkAllAsRead)

	mediaGroup := api.Group("/media")
	mediaGroup.Post("/", authRequired, h.Media.Upload)
	mediaGroup.Get("/:mediaId", h.Media.Get)
	mediaGroup.Delete("/:mediaId", authRequired, h.Media.Delete)
}

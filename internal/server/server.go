package server

import (
	"context"
	"fmt"
	"time"

	"ottify/internal/cache"
	"ottify/internal/config"
	"ottify/internal/database"
	"ottify/internal/middleware"
	"ottify/internal/repository"
	"ottify/internal/service"
	"ottify/internal/storage"
	minioStorage "ottify/internal/storage/minio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client

	userRepo    repository.UserRepository
	programRepo repository.ProgramRepository
	subjectRepo repository.SubjectRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	reviewRepo  repository.ReviewRepository
	genreRepo   repository.GenreRepository
	ottRepo     repository.OttRepository

	subjectService *service.SubjectService
	threadService  *service.ThreadService
	likeService    *service.LikeService
	userService    *service.UserService
	reviewService  *service.ReviewService
	profileService *service.ProfileService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var avatars storage.AvatarStorage
	if cfg.S3Endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := minioStorage.New(ctx, minioStorage.Config{
			Endpoint:            cfg.S3Endpoint,
			AccessKey:           cfg.S3AccessKey,
			SecretKey:           cfg.S3SecretKey,
			Bucket:              cfg.S3Bucket,
			PresignTTL:          cfg.S3PresignTTL,
			PublicBaseURL:       cfg.S3PublicBaseURL,
			MaxSizeBytes:        cfg.AvatarMaxSizeBytes,
			AllowedContentTypes: cfg.AvatarContentTypeList(),
		})
		if err != nil {
			return nil, fmt.Errorf("avatar storage init failed: %w", err)
		}
		avatars = store
	}

	return newServer(cfg, db, redisClient, avatars), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, avatars storage.AvatarStorage) *Server {
	return newServer(cfg, db, redisClient, avatars)
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, avatars storage.AvatarStorage) *Server {
	middleware.InitMiddleware(cfg)

	s := &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		userRepo:    repository.NewUserRepository(db),
		programRepo: repository.NewProgramRepository(db),
		subjectRepo: repository.NewSubjectRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		likeRepo:    repository.NewLikeRepository(db),
		reviewRepo:  repository.NewReviewRepository(db),
		genreRepo:   repository.NewGenreRepository(db),
		ottRepo:     repository.NewOttRepository(db),
	}

	s.subjectService = service.NewSubjectService(s.subjectRepo, s.programRepo, s.commentRepo)
	s.threadService = service.NewThreadService(s.subjectRepo, s.commentRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.subjectRepo, s.commentRepo)
	s.userService = service.NewUserService(s.userRepo, s.genreRepo, s.ottRepo, s.programRepo, avatars)
	s.reviewService = service.NewReviewService(s.reviewRepo, s.programRepo, s.userRepo)
	s.profileService = service.NewProfileService(
		s.userRepo, s.genreRepo, s.ottRepo, s.subjectRepo, s.commentRepo, s.reviewRepo, s.programRepo)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware runs before middlewares that can short-circuit so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/social", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "social_login"), s.SocialLogin)

	// Public browse routes
	publicSubjects := api.Group("/subjects")
	publicSubjects.Get("/", s.GetSubjects)
	publicSubjects.Get("/:id", s.GetThread)

	publicReviews := api.Group("/reviews")
	publicReviews.Get("/latest", s.GetLatestReviews)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// Subject routes
	subjects := protected.Group("/subjects")
	subjects.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_subject"), s.CreateSubject)
	// Specific /:id/:resource routes BEFORE generic /:id routes
	subjects.Post("/:id/like", s.ToggleSubjectLike)
	subjects.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	subjects.Post("/:id/comments/:commentId/replies", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_reply"), s.CreateReply)
	subjects.Post("/:id/comments/:commentId/like", s.ToggleCommentLike)
	subjects.Post("/:id/replies/:replyId/like", s.ToggleReplyLike)
	subjects.Delete("/:id/comments/:commentId/replies/:replyId", s.DeleteReply)
	subjects.Delete("/:id/comments/:commentId", s.DeleteComment)
	subjects.Put("/:id", s.UpdateSubject)
	subjects.Delete("/:id", s.DeleteSubject)

	// Comment edit routes address the comment level directly
	protected.Put("/comments/:id", s.UpdateComment)
	protected.Put("/replies/:id", s.UpdateReply)

	// Review routes
	reviews := protected.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_review"), s.CreateReview)
	reviews.Post("/:id/like", s.LikeReview)
	reviews.Delete("/:id/like", s.UnlikeReview)

	// Profile routes
	me := protected.Group("/users/me")
	me.Get("/profile", s.GetMyProfile)
	me.Put("/", s.UpdateMyProfile)
	me.Post("/avatar-upload", s.RequestAvatarUpload)
	me.Put("/genres/first", s.UpdateFirstGenre)
	me.Post("/genres/:id/toggle", s.ToggleSecondGenre)
	me.Put("/otts", s.UpdateSubscribedOtts)
	me.Get("/subjects", s.GetMySubjects)
	me.Get("/commented-subjects", s.GetMyCommentedSubjects)
	me.Get("/reviews", s.GetMyReviews)
	me.Get("/liked-reviews", s.GetMyLikedReviews)
	me.Get("/liked-programs", s.GetMyLikedPrograms)
	me.Get("/uninterested-programs", s.GetMyUninterestedPrograms)

	// Program interest marks
	programs := protected.Group("/programs")
	programs.Post("/:id/like", s.MarkProgramLiked)
	programs.Delete("/:id/like", s.UnmarkProgramLiked)
	programs.Post("/:id/uninterested", s.MarkProgramUninterested)
	programs.Delete("/:id/uninterested", s.UnmarkProgramUninterested)
}

// Shutdown releases server-held resources: the Redis client and the
// underlying SQL connection pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; rate limiting degrades without it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

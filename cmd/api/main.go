package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"floorcare/internal/config"
	"floorcare/internal/database"
	"floorcare/internal/mailer"
	"floorcare/internal/middleware"
	"floorcare/internal/modules/admin"
	"floorcare/internal/modules/auth"
	"floorcare/internal/modules/booking"
	jwtsvc "floorcare/internal/pkg/jwt"
	"floorcare/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	otpMailer := mailer.NewSMTP(cfg)

	authService := auth.NewService(userRepo, j, otpMailer, cfg.OtpTTL, cfg.OtpResendCooldown)
	authHandler := auth.NewHandler(authService, cfg.UploadDir, cfg.MaxAvatarSize)

	bookingService := booking.NewService(bookingRepo, userRepo)
	bookingHandler := booking.NewHandler(bookingService)

	sessionService := admin.NewSessionService(cfg.AdminEmail, cfg.AdminPassword, j)
	adminUsersService := admin.NewUsersService(userRepo)
	adminHandler := admin.NewHandler(sessionService, adminUsersService)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.AllowedOriginsCSV))
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		adminHandler.RegisterPublicRoutes(v1)

		// authenticated users
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
		}

		// admin role required
		adminOnly := v1.Group("/")
		adminOnly.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			bookingHandler.RegisterAdminRoutes(adminOnly)
			adminHandler.RegisterAdminRoutes(adminOnly)
		}
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/config"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/cache"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/handlers"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/repository"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/db"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/httpclient"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/jwt"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/profiling"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/tracing"
)

// registerPublicRoutes registers the public API surface
func registerPublicRoutes(
	v1 *gin.RouterGroup,
	cfg *config.Config,
	generalRateLimiter, submitRateLimiter, authRateLimiter *middleware.RateLimiter,
	tokenManager *jwt.TokenManager,
	authHandler *handlers.AuthHandler,
	mentorHandler *handlers.MentorHandler,
	requestHandler *handlers.RequestHandler,
	matchHandler *handlers.MatchHandler,
) {
	session := middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	auth := v1.Group("/auth")
	auth.POST("/signup", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.Signup)
	auth.POST("/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", session, authHandler.Session)

	v1.GET("/mentors", generalRateLimiter.Middleware(), mentorHandler.GetMentors)
	v1.GET("/mentors/:id", generalRateLimiter.Middleware(), mentorHandler.GetMentor)
	v1.POST("/mentee-signup", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), requestHandler.Submit)
	v1.GET("/matches", generalRateLimiter.Middleware(), session, matchHandler.GetMatches)
}

// registerSessionRoutes registers the session-guarded mentor, chat and admin
// surfaces
func registerSessionRoutes(
	v1 *gin.RouterGroup,
	cfg *config.Config,
	generalRateLimiter, chatRateLimiter *middleware.RateLimiter,
	tokenManager *jwt.TokenManager,
	requestHandler *handlers.RequestHandler,
	chatHandler *handlers.ChatHandler,
	meetingHandler *handlers.MeetingHandler,
	adminHandler *handlers.AdminHandler,
) {
	session := middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	// Chat routes: either participant of a conversation
	v1.POST("/conversations/:id/messages", chatRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), session, chatHandler.SendMessage)
	v1.GET("/chat/:id", generalRateLimiter.Middleware(), session, chatHandler.GetChat)

	// Mentor dashboard routes
	mentor := v1.Group("/mentor")
	mentor.Use(session, middleware.RequireRole(models.RoleMentor), middleware.RequireMentorProfile())
	mentor.GET("/requests", requestHandler.GetRequests)
	mentor.GET("/requests/:id", requestHandler.GetRequestByID)
	mentor.POST("/requests/:id/approve", requestHandler.Approve)
	mentor.POST("/requests/:id/decline", requestHandler.Decline)
	mentor.POST("/conversations/:id/close", chatHandler.CloseConversation)
	mentor.POST("/conversations/:id/meetings", meetingHandler.Schedule)
	mentor.GET("/conversations/:id/meetings", meetingHandler.ListByConversation)
	mentor.POST("/meetings/:id/status", meetingHandler.UpdateStatus)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(session, middleware.RequireRole(models.RoleAdmin))
	admin.POST("/mentors", adminHandler.CreateMentor)
	admin.PUT("/mentors/:id", adminHandler.UpdateMentor)
	admin.DELETE("/mentors/:id", adminHandler.RemoveMentor)
	admin.POST("/mentors/:id/restore", adminHandler.RestoreMentor)
	admin.POST("/mentors/:id/link-account", adminHandler.LinkAccount)
	admin.POST("/requests/sweep-expired", adminHandler.SweepExpired)
	admin.POST("/conversations/:id/close", chatHandler.CloseConversation)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Diaspora Bridge API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.CollectorEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	metrics.Init()
	metrics.RecordInfrastructureMetrics()

	// PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: migrations run separately via the migrate command

	// Repositories
	directoryCache := cache.NewMentorDirectoryCache(time.Duration(cfg.Cache.MentorTTLSeconds) * time.Second)
	mentorRepo := repository.NewMentorRepository(pool, directoryCache)
	menteeRepo := repository.NewMenteeRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	meetingRepo := repository.NewMeetingRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)

	// Warm the directory cache before accepting traffic
	if _, err := mentorRepo.GetAll(context.Background(), models.FilterOptions{OnlyVisible: true}); err != nil {
		logger.Fatal("Failed to warm mentor directory cache", zap.Error(err))
	}

	httpClient := httpclient.NewStandardClient()
	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.SessionTTLHours)

	// Services
	authService := services.NewAuthService(accountRepo, menteeRepo, tokenManager)
	mentorService := services.NewMentorService(mentorRepo, accountRepo, cfg.Server.BaseURL)
	matchingService := services.NewMatchingService(menteeRepo, mentorRepo)
	requestService := services.NewRequestService(requestRepo, mentorRepo, menteeRepo, accountRepo, httpClient, cfg)
	conversationService := services.NewConversationService(conversationRepo, messageRepo)
	meetingService := services.NewMeetingService(meetingRepo, conversationRepo, menteeRepo, httpClient, cfg.Notifications.EmailWebhookURL)

	// Background expiry sweeper
	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	defer sweeperCancel()
	sweeper := services.NewExpirySweeper(requestService, time.Duration(cfg.Requests.SweepIntervalMins)*time.Minute)
	go sweeper.Run(sweeperCtx)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Session.SessionTTLHours, cfg.Session.CookieDomain, cfg.Session.CookieSecure)
	mentorHandler := handlers.NewMentorHandler(mentorService)
	requestHandler := handlers.NewRequestHandler(requestService)
	matchHandler := handlers.NewMatchHandler(matchingService)
	chatHandler := handlers.NewChatHandler(conversationService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	adminHandler := handlers.NewAdminHandler(mentorService, requestService)
	healthHandler := handlers.NewHealthHandler(pool)

	// Router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	submitRateLimiter := middleware.NewRateLimiter(1, 5)      // request submissions (prevent spam)
	authRateLimiter := middleware.NewRateLimiter(0.5, 5)      // login/signup abuse prevention
	chatRateLimiter := middleware.NewRateLimiter(10, 20)      // message sends

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	registerPublicRoutes(v1, cfg, generalRateLimiter, submitRateLimiter, authRateLimiter,
		tokenManager, authHandler, mentorHandler, requestHandler, matchHandler)
	registerSessionRoutes(v1, cfg, generalRateLimiter, chatRateLimiter,
		tokenManager, requestHandler, chatHandler, meetingHandler, adminHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	sweeperCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/storyassistant/internal/config"
	"anoa.com/storyassistant/internal/llm"
	"anoa.com/storyassistant/internal/middleware"
	"anoa.com/storyassistant/internal/monitoring"
	"anoa.com/storyassistant/pkg/storage"

	professionalHttp "anoa.com/storyassistant/internal/modules/professional/delivery/http"
	professionalRepo "anoa.com/storyassistant/internal/modules/professional/repository"
	professionalService "anoa.com/storyassistant/internal/modules/professional/service"

	searchService "anoa.com/storyassistant/internal/modules/search/service"

	sessionHttp "anoa.com/storyassistant/internal/modules/session/delivery/http"
	sessionRepo "anoa.com/storyassistant/internal/modules/session/repository"
	sessionService "anoa.com/storyassistant/internal/modules/session/service"

	storyHttp "anoa.com/storyassistant/internal/modules/story/delivery/http"
	storyRepo "anoa.com/storyassistant/internal/modules/story/repository"
	storyService "anoa.com/storyassistant/internal/modules/story/service"

	taleHttp "anoa.com/storyassistant/internal/modules/tale/delivery/http"
	taleRepo "anoa.com/storyassistant/internal/modules/tale/repository"
	taleService "anoa.com/storyassistant/internal/modules/tale/service"

	userHttp "anoa.com/storyassistant/internal/modules/user/delivery/http"
	userRepo "anoa.com/storyassistant/internal/modules/user/repository"
	userService "anoa.com/storyassistant/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

// NewServer wires every module. redisClient may be nil; sessions then live
// in process and generation is not rate limited.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, generator llm.Provider) *Server {
	monitoring.Init()

	// Optional search index
	var storySearch searchService.StorySearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		storySearch = searchService.NewMeiliSearchService(meiliClient)
	} else {
		log.Println("⚠️ MEILISEARCH_HOST not set, story search disabled")
	}

	// Optional share storage
	var fileStorage storage.FileStorage
	if cfg.CloudinaryURL != "" {
		cld, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
		fileStorage = cld
	} else {
		log.Println("⚠️ CLOUDINARY_URL not set, story sharing disabled")
	}

	var sessionStore sessionRepo.Store
	if redisClient != nil {
		sessionStore = sessionRepo.NewRedisStore(redisClient, cfg.SessionTTL)
	} else {
		sessionStore = sessionRepo.NewMemoryStore(cfg.SessionTTL)
	}
	sessionSvc := sessionService.NewSessionService(sessionStore)
	sessionHandler := sessionHttp.NewSessionHandler(sessionSvc)

	userRepository := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTTTL, storySearch)
	authHandler := userHttp.NewAuthHandler(authSvc, sessionSvc)

	taleSvc := taleService.NewTaleService(taleRepo.NewXLSXTaleRepository(cfg.TalesFile))
	taleHandler := taleHttp.NewTaleHandler(taleSvc)

	storySvc := storyService.NewStoryService(
		storyRepo.NewStoryRepository(db),
		generator,
		taleSvc,
		sessionSvc,
		storySearch,
		fileStorage,
		redisClient,
		storyService.Options{
			GenerateRateLimit: cfg.RateLimitGenerate,
			UploadFolder:      cfg.CloudinaryUploadFolder,
		},
	)
	storyHandler := storyHttp.NewStoryHandler(storySvc)

	professionalSvc := professionalService.NewProfessionalService(professionalRepo.NewProfessionalRepository(db))
	professionalHandler := professionalHttp.NewProfessionalHandler(professionalSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/metrics"},
	}))
	router.Use(middleware.PrometheusMetrics())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.ErrorReporter())

	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
	api.GET("/about", getAbout)
	api.GET("/stories/options", storyHandler.GetOptions)
	api.GET("/tales", taleHandler.GetTales)
	api.GET("/professionals", professionalHandler.GetProfessionals)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		// Session routes
		protected.GET("/session", sessionHandler.GetSession)
		protected.PUT("/session/page", sessionHandler.SetPage)
		protected.PUT("/session/draft", sessionHandler.UpdateDraft)

		// Story routes
		protected.POST("/stories/generate", storyHandler.GenerateStory)
		protected.POST("/stories/export", storyHandler.ExportStory)
		protected.POST("/stories", storyHandler.SaveStory)
		protected.GET("/stories", storyHandler.GetMyStories)
		protected.GET("/stories/:id", storyHandler.GetStory)
		protected.DELETE("/stories/:id", storyHandler.DeleteStory)
		protected.GET("/stories/:id/download", storyHandler.DownloadStory)
		protected.POST("/stories/:id/share", storyHandler.ShareStory)

		// Booking routes
		protected.POST("/bookings", professionalHandler.CreateBooking)
		protected.GET("/bookings", professionalHandler.GetMyBookings)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

package routes

import (
	"time"

	"adhub-backend/internal/config"
	"adhub-backend/internal/handlers"
	"adhub-backend/internal/middleware"
	"adhub-backend/internal/models"
	"adhub-backend/internal/services"
	"adhub-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerShareKinds wires the two shareable record kinds into the
// generic share service. The payload projections are what anonymous
// viewers get: notably a recording exposes only the processed summary,
// never the transcript or audio.
func registerShareKinds(shareService *services.ShareService) {
	shareService.Register(services.ShareKind{
		Name:       "deck",
		PathPrefix: "/decks/share",
		NewModel:   func() models.Shareable { return &models.Deck{} },
		Preloads:   []string{"Account", "User"},
		Payload: func(resource models.Shareable) interface{} {
			deck := resource.(*models.Deck)
			accountName := ""
			if deck.Account != nil {
				accountName = deck.Account.Name
			}
			return gin.H{
				"id":             deck.ID,
				"title":          deck.Title,
				"type":           deck.Type,
				"brand_identity": deck.BrandIdentity,
				"content_html":   deck.ContentHTML,
				"account":        accountName,
				"created_at":     deck.CreatedAt,
			}
		},
	})

	shareService.Register(services.ShareKind{
		Name:       "optimization",
		PathPrefix: "/optimization",
		NewModel:   func() models.Shareable { return &models.OptimizationRecording{} },
		Preloads:   []string{"Account"},
		Payload: func(resource models.Shareable) interface{} {
			recording := resource.(*models.OptimizationRecording)
			return gin.H{
				"id":          recording.ID,
				"account":     recording.Account.Name,
				"recorded_at": recording.RecordedAt,
				"processed":   recording.Processed,
				"context":     recording.Context,
			}
		},
	})
}

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware([]string{cfg.Frontend.BaseURL}))
	router.Use(middleware.RateLimitMiddleware(60))

	authService := services.NewAuthService(db)
	accountService := services.NewAccountService(db)
	creativeService := services.NewCreativeService(db)
	deckService := services.NewDeckService(db)
	optimizationService := services.NewOptimizationService(db)
	fileService := services.NewFileService(db, cfg)
	notionService := services.NewNotionService(db, cfg.Notion)
	platformClient := services.NewPlatformClient(cfg.Metrics.PlatformURL, cfg.Metrics.APIKey)
	metricsService := services.NewMetricsService(db, platformClient, cfg.Metrics.ChunkDays)

	shareService := services.NewShareService(db, cfg.Share.SiteURL, utils.DefaultPasswordParams)
	registerShareKinds(shareService)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	accountHandler := handlers.NewAccountHandler(accountService)
	creativeHandler := handlers.NewCreativeHandler(creativeService)
	deckHandler := handlers.NewDeckHandler(deckService)
	optimizationHandler := handlers.NewOptimizationHandler(optimizationService, cfg.File.UploadPath)
	shareHandler := handlers.NewShareHandler(shareService)
	fileHandler := handlers.NewFileHandler(fileService)
	reportHandler := handlers.NewReportHandler(metricsService, accountService)
	adminHandler := handlers.NewAdminHandler(db, notionService)

	api := router.Group("/api")

	public := api.Group("")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/whitelist", authHandler.CheckWhitelist)
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// anonymous share resolution
		shared := public.Group("/public")
		{
			shared.POST("/decks/view", shareHandler.ViewShared("deck"))
			shared.POST("/optimizations/view", shareHandler.ViewShared("optimization"))
		}
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg))
	{
		user := protected.Group("/auth")
		{
			user.GET("/me", authHandler.GetMe)
			user.POST("/logout", authHandler.Logout)
		}

		accounts := protected.Group("/accounts")
		{
			accounts.GET("", accountHandler.GetAccounts)
			accounts.GET("/summaries", accountHandler.GetAccountSummaries)
			accounts.GET("/:id", accountHandler.GetAccount)
			accounts.GET("/:id/metrics", reportHandler.GetMetrics)
			accounts.PUT("/:id", middleware.StaffMiddleware(), accountHandler.UpdateAccount)
		}

		drafts := protected.Group("/drafts")
		{
			drafts.GET("", creativeHandler.GetDrafts)
			drafts.POST("", creativeHandler.CreateDraft)
			drafts.GET("/:id", creativeHandler.GetDraft)
			drafts.PUT("/:id", creativeHandler.UpdateDraft)
			drafts.DELETE("/:id", creativeHandler.DeleteDraft)
			drafts.POST("/:id/submit", creativeHandler.SubmitDraft)
			drafts.POST("/:id/files", fileHandler.UploadFile)
			drafts.GET("/:id/files", fileHandler.GetFiles)
		}

		files := protected.Group("/files")
		{
			files.DELETE("/:id", fileHandler.DeleteFile)
		}

		decks := protected.Group("/decks")
		{
			decks.GET("", deckHandler.GetDecks)
			decks.POST("", deckHandler.CreateDeck)
			decks.POST("/share", shareHandler.CreateShare("deck"))
			decks.GET("/:id", deckHandler.GetDeck)
			decks.PUT("/:id", deckHandler.UpdateDeck)
			decks.DELETE("/:id", deckHandler.DeleteDeck)
			decks.DELETE("/:id/share", shareHandler.RevokeShare("deck"))
		}

		optimizations := protected.Group("/optimizations")
		{
			optimizations.GET("", optimizationHandler.GetRecordings)
			optimizations.POST("", optimizationHandler.CreateRecording)
			optimizations.POST("/share", middleware.StaffMiddleware(), shareHandler.CreateShare("optimization"))
			optimizations.GET("/:id", optimizationHandler.GetRecording)
			optimizations.POST("/:id/audio", optimizationHandler.UploadAudio)
			optimizations.POST("/:id/transcript", optimizationHandler.SetTranscript)
			optimizations.POST("/:id/process", optimizationHandler.SetProcessed)
			optimizations.PUT("/:id/context", optimizationHandler.SetContext)
			optimizations.DELETE("/:id/share", shareHandler.RevokeShare("optimization"))
		}

		reports := protected.Group("/reports")
		{
			reports.POST("/sync", reportHandler.Sync)
		}
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(db, cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", adminHandler.GetUsers)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.POST("/notion/sync", adminHandler.TriggerNotionSync)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return router
}

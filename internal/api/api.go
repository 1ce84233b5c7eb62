package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/godwincybertechsolutions-cmyk/webinar/internal/genai"
	"github.com/godwincybertechsolutions-cmyk/webinar/internal/insight"
	"github.com/godwincybertechsolutions-cmyk/webinar/internal/livekit"
	"github.com/godwincybertechsolutions-cmyk/webinar/internal/scheduler"
	webinarstore "github.com/godwincybertechsolutions-cmyk/webinar/internal/stores/webinar"
	"github.com/godwincybertechsolutions-cmyk/webinar/internal/transcribe"
	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/sdk"
	"github.com/godwincybertechsolutions-cmyk/webinar/pkg/utils"

	health_module "github.com/godwincybertechsolutions-cmyk/webinar/internal/api/modules/health"
	insight_module "github.com/godwincybertechsolutions-cmyk/webinar/internal/api/modules/insight"
	webinar_module "github.com/godwincybertechsolutions-cmyk/webinar/internal/api/modules/webinar"
)

func Start(cfg *utils.Config) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Open the event store
	store, err := webinarstore.NewMySqlStore(cfg.Get("DATABASE_URL"))
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to open store: ", err)
	}

	// Create the generation client
	generator, err := genai.NewOpenAIGenerator(
		cfg.Get("OPENAI_API_KEY"),
		cfg.GetWithDefault("GENERATION_MODEL", "gpt-4o"),
		cfg.GetDuration("GENERATION_TIMEOUT", 60*time.Second),
	)
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to create generator: ", err)
	}

	// Load instruction overrides, if configured
	prompts, err := utils.LoadPromptSet(cfg.Get("PROMPTS_FILE"))
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to load prompt set: ", err)
	}

	// Assemble the insight components
	contexts := insight.NewContextBuilder(store)
	answerer := insight.NewAnswerer(contexts, generator, prompts.AnswerSystem)
	summarizer := insight.NewSummarizer(contexts, store, generator, prompts.SummarySystem)
	gateway := insight.NewSummaryGateway(store, summarizer)
	transcriber := transcribe.New(store, generator, prompts.TranscribeSystem)

	// Token minting is optional; the token route reports 503 without it
	var minter *livekit.TokenMinter
	if m, err := livekit.NewTokenMinter(
		cfg.Get("LIVEKIT_API_KEY"),
		cfg.Get("LIVEKIT_API_SECRET"),
		cfg.GetDuration("LIVEKIT_TOKEN_TTL", 0),
	); err != nil {
		log.Printf("[API-MAIN]: LiveKit tokens disabled: %v", err)
	} else {
		minter = m
	}

	// Start the status scheduler
	sched := scheduler.New(store)
	if err := sched.Start(); err != nil {
		log.Fatal("[API-MAIN]: Failed to start scheduler: ", err)
	}
	defer sched.Stop()

	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Route not found", nil).AsGinResponse())
	})

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)
	webinar_module.RegisterRoutes(baseGroup, webinar_module.NewController(store, minter))
	insight_module.RegisterRoutes(baseGroup, insight_module.NewController(store, answerer, summarizer, gateway, transcriber))

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

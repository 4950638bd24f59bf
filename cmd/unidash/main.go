package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"unidash/internal/command"
	"unidash/internal/config"
	"unidash/internal/handlers"
	"unidash/internal/middleware"
	"unidash/internal/models"
	"unidash/internal/store"
	"unidash/internal/telemetry"
	"unidash/internal/utils"
)

type App struct {
	cfg         config.Config
	store       *store.Store
	broadcaster *telemetry.Broadcaster
	sampler     *telemetry.DiskSampler
	interpreter command.Interpreter
	rateLimiter *middleware.RateLimiter
	logger      *utils.Logger
}

var app *App

func main() {
	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config failed to load: %v", err)
	}

	logger := utils.NewLogger(cfg.LogFile)
	defer logger.Close()

	st := store.New()

	var interpreter command.Interpreter
	if cfg.AIConfigured() {
		interpreter = command.NewOpenAIInterpreter(st, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.CommandTimeout, logger)
	} else {
		logger.Write("AI Integration credentials not configured; using heuristic command routing")
		interpreter = command.NewHeuristicInterpreter(st)
	}

	app = &App{
		cfg:         cfg,
		store:       st,
		broadcaster: telemetry.NewBroadcaster(st, cfg.BroadcastInterval, logger),
		interpreter: interpreter,
		rateLimiter: middleware.NewRateLimiter(rate.Every(time.Minute/100), 10),
		logger:      logger,
	}

	// Start observer registration loop
	go app.broadcaster.Run()

	if cfg.SampleHostDisk {
		app.sampler = telemetry.NewDiskSampler(st, "system", cfg.BroadcastInterval, logger)
		app.sampler.Start()
	}

	r := setupRouter()

	srv := &http.Server{
		Addr:           ":" + strconv.Itoa(cfg.Port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Starting server on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if app.sampler != nil {
		app.sampler.Stop()
	}
	app.rateLimiter.Stop()

	// Give server 5 seconds to finish handling requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func setupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	// Rate limiting - 100 requests per minute per IP
	r.Use(app.rateLimiter.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	dashboard := handlers.NewDashboardHandlers(app.store, app.logger)
	commands := handlers.NewCommandHandlers(app.interpreter)

	api := r.Group("/api")
	{
		api.GET("/services", dashboard.APIServices)
		api.GET("/services/:id", dashboard.APIServiceByID)
		api.GET("/gpus", dashboard.APIGpus)
		api.GET("/gpus/:id", dashboard.APIGpuByID)
		api.GET("/storage", dashboard.APIStorage)
		api.GET("/storage/:id", dashboard.APIStorageByID)
		api.POST("/storage/offload", dashboard.APIStorageOffload)
		api.GET("/cameras", dashboard.APICameras)
		api.GET("/cameras/:id", dashboard.APICameraByID)
		api.PATCH("/cameras/:id", dashboard.APICameraUpdate)
		api.GET("/captions", dashboard.APICaptions)
		api.POST("/captions", middleware.ValidateJSON(func() interface{} { return &models.NewCaption{} }), dashboard.APICaptionCreate)
		api.GET("/home-assistant", dashboard.APIAutomationStats)
		api.GET("/models", dashboard.APIModels)
		api.GET("/events", dashboard.APIEvents)
		api.POST("/ai/command", commands.APICommand)
	}

	// WebSocket endpoint
	r.GET("/ws", app.broadcaster.HandleWebSocket())

	return r
}

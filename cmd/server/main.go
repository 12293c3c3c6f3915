package main

import (
	"context"
	"fmt"
	"log"

	"knoyosta-backend/config"
	"knoyosta-backend/handlers"
	"knoyosta-backend/repository"
	"knoyosta-backend/service"
	"knoyosta-backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize Postgres:", err)
	}
	defer db.Close()

	transcriptStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db, cfg.MaxSessionMessages)
	archiveRepo := repository.NewArchiveRepository(db)

	// Initialize services
	accountService := service.NewAccountService(
		service.WithUserStore(userRepo),
	)

	oracleOpts := []service.OracleServiceOption{
		service.WithSessionStore(sessionRepo),
		service.WithHistoryWindow(cfg.HistoryWindow),
		service.WithLLMTimeout(cfg.LLMTimeout),
	}

	// Missing API key degrades the chat endpoint instead of refusing to start
	if cfg.ChatConfigured() {
		geminiClient, err := initGemini(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatal("Failed to initialize Gemini:", err)
		}
		oracleOpts = append(oracleOpts, service.WithTextGenerator(
			service.NewGeminiGenerator(geminiClient, cfg.GeminiModel),
		))
	} else {
		log.Println("Warning: GEMINI_API_KEY not set, chat endpoint will report UNCONFIGURED")
	}

	oracleService := service.NewOracleService(oracleOpts...)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	oracleHandler := handlers.NewOracleHandler(oracleService)
	archiveHandler := handlers.NewArchiveHandler(sessionRepo, archiveRepo, transcriptStorage)

	// Setup Gin router
	r := gin.Default()

	// Cross-origin requests are permitted from any origin
	r.Use(cors.Default())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	r.POST("/register", accountHandler.Register)
	r.POST("/chat", oracleHandler.Chat)
	r.POST("/sessions/:id/archive", archiveHandler.ArchiveSession)

	log.Printf("Server starting on port %d", cfg.Port)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Postgres connection established")
	return pool, nil
}

func initGemini(apiKey string) (*genai.Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/apperr"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/db"
	"github.com/Alay2810/vercel-ai-sql-backend/internal/nlsql"
)

type App struct {
	Config     *Config
	Store      *db.Store
	Translator *nlsql.Translator
	Router     *gin.Engine
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := LoadConfig()

	app := &App{
		Config: config,
	}

	if err := app.InitStore(); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer app.Store.Close()

	app.Translator = nlsql.NewTranslator(
		nlsql.NewOpenAIClient(config.OpenAIAPIKey, config.OpenAIBaseURL, config.OpenAIModel))

	app.InitRouter()

	addr := ":" + config.Port
	log.Printf("HTTP server starting on port %s", config.Port)
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func (app *App) InitStore() error {
	storeType, connStr := app.Config.storeConfig()

	store, err := db.NewConnectionBuilder(storeType).
		ConnectionString(connStr).
		Build()
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}

	app.Store = store
	return nil
}

func (app *App) InitRouter() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app.Router = gin.New()
	app.Router.Use(gin.Logger())
	app.Router.Use(gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	app.Router.Use(cors.New(corsConfig))

	// Health check
	app.Router.GET("/api/health", app.healthHandler)

	// API routes
	api := app.Router.Group("/api")
	{
		api.POST("/ask", app.askHandler)
		api.POST("/crud", app.crudHandler)
		api.POST("/execute", app.executeHandler)
		api.GET("/schema/:table", app.schemaHandler)
		api.POST("/upload", app.uploadHandler)
		api.GET("/export/:table", app.exportHandler)
	}
}

func (app *App) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   "1.0.0",
	})
}

// respondError maps pipeline errors onto HTTP statuses. Errors outside the
// taxonomy fall back to 500.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.StatusFor(err), gin.H{"error": err.Error()})
}

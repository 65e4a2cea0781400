package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"sanctuary/chat"
	"sanctuary/cli"
	"sanctuary/config"
	"sanctuary/database"
	"sanctuary/handlers"
	"sanctuary/service"
	"sanctuary/version"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables and parse CLI flags
	config.ParseFlags()

	logFile, err := setupLogging(config.Settings.LogFilePath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Check if CLI mode is requested
	if config.Settings.CLIMode {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		mainCLI()
		return
	}

	// Configure log format
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Printf("Sanctuary %s starting up...", version.GetFullVersion())

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize services
	service.InitServices(database.DB)

	// Wire the chat orchestrator against the configured completion endpoint
	handlers.SetOrchestrator(chat.New(chat.Config{
		APIKey:      config.Settings.OpenAIAPIKey,
		BaseURL:     config.Settings.OpenAIBaseURL,
		Model:       config.Settings.OpenAIModel,
		Temperature: config.Settings.ChatTemperature,
		MaxTokens:   config.Settings.ChatMaxTokens,
		Timeout:     time.Duration(config.Settings.ChatTimeoutSeconds) * time.Second,
	}))

	// Make sure the upload directory exists before serving it
	if err := os.MkdirAll(config.Settings.UploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Start goroutine monitor
	go monitorGoroutines()

	// Set Gin mode
	if config.Settings.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Direct Gin logs to the configured log file
	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.Writer()
	gin.DisableConsoleColor()

	r := buildRouter()

	// Find an available port
	port := findAvailablePort(config.Settings.Port)
	if port != config.Settings.Port {
		log.Printf("Default port %d is busy. Switched to %d", config.Settings.Port, port)
	}

	// Create HTTP server
	addr := fmt.Sprintf("0.0.0.0:%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on http://127.0.0.1:%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for OS interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Received interrupt signal")

	log.Println("Sanctuary shutting down...")

	// Close database connection
	if err := database.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	// Gracefully shut down HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// buildRouter assembles the gin engine with all API routes.
func buildRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware; credentials allowed so the admin cookie travels
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Uploaded files are public by path
	r.Static("/uploads", config.Settings.UploadDir)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "sanctuary", "version": version.GetFullVersion()})
	})

	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/login", handlers.Login)
		api.POST("/auth/logout", handlers.Logout)
		api.GET("/auth/check", handlers.CheckAuth)

		// Public read routes
		api.GET("/links", handlers.ListLinks)
		api.GET("/categories", handlers.ListCategories)
		api.GET("/posts", handlers.ListPublishedPosts)
		api.GET("/posts/:id", handlers.GetPublishedPost)
		api.GET("/notes", handlers.ListNotes)
		api.GET("/wallpapers", handlers.ListWallpapers)
		api.GET("/announcement", handlers.GetAnnouncement)
		api.GET("/announcement/history", handlers.GetAnnouncementHistory)
		api.GET("/settings/ui", handlers.GetUISettings)
		api.GET("/settings/notes-wall", handlers.GetNotesWallSettings)
		api.GET("/characters", handlers.ListPublicCharacters)

		// Stateless chat: nothing persisted, caller supplies everything
		api.POST("/chat/stateless", handlers.StatelessRound)

		// Health and metrics routes
		api.GET("/health", handlers.HealthCheck)
		api.GET("/metrics", handlers.GetMetrics)
	}

	admin := api.Group("/admin", handlers.RequireAdmin())
	{
		admin.POST("/links", handlers.CreateLink)
		admin.PUT("/links/:id", handlers.UpdateLink)
		admin.DELETE("/links/:id", handlers.DeleteLink)

		admin.POST("/categories", handlers.CreateCategory)
		admin.PUT("/categories/:id", handlers.RenameCategory)
		admin.DELETE("/categories/:id", handlers.DeleteCategory)
		admin.POST("/categories/reorder", handlers.ReorderCategories)

		admin.GET("/posts", handlers.ListAllPosts)
		admin.POST("/posts", handlers.CreatePost)
		admin.PUT("/posts/:id", handlers.UpdatePost)
		admin.DELETE("/posts/:id", handlers.DeletePost)

		admin.POST("/notes", handlers.CreateNote)
		admin.PUT("/notes/:id", handlers.UpdateNote)
		admin.PUT("/notes/:id/move", handlers.MoveNote)
		admin.POST("/notes/reorder", handlers.ReorderNotes)
		admin.DELETE("/notes/:id", handlers.DeleteNote)

		admin.POST("/wallpapers", handlers.CreateWallpaper)
		admin.PUT("/wallpapers/:id", handlers.UpdateWallpaper)
		admin.DELETE("/wallpapers/:id", handlers.DeleteWallpaper)

		admin.GET("/characters", handlers.ListCharacters)
		admin.POST("/characters", handlers.CreateCharacter)
		admin.PUT("/characters/:id", handlers.UpdateCharacter)
		admin.DELETE("/characters/:id", handlers.DeleteCharacter)

		admin.GET("/chat/sessions", handlers.ListSessions)
		admin.POST("/chat/sessions", handlers.CreateSession)
		admin.PUT("/chat/sessions/:id", handlers.RenameSession)
		admin.DELETE("/chat/sessions/:id", handlers.DeleteSession)
		admin.GET("/chat/sessions/:id/messages", handlers.ListSessionMessages)
		admin.POST("/chat/sessions/:id/messages", handlers.PostSessionMessage)

		admin.PUT("/announcement", handlers.SetAnnouncement)
		admin.PUT("/settings/ui", handlers.SaveUISettings)
		admin.PUT("/settings/notes-wall", handlers.SaveNotesWallSettings)
		admin.GET("/config/:key", handlers.GetConfigValue)
		admin.PUT("/config/:key", handlers.SetConfigValue)
		admin.DELETE("/config/:key", handlers.DeleteConfigValue)

		admin.POST("/upload", handlers.UploadFiles)
	}

	return r
}

// findAvailablePort searches for an available port
func findAvailablePort(startPort int) int {
	for port := startPort; port < startPort+100; port++ {
		addr := fmt.Sprintf("0.0.0.0:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port
		}
	}
	log.Fatal("No available ports found")
	return startPort
}

// monitorGoroutines tracks goroutine count to prevent leaks
func monitorGoroutines() {
	ticker := time.NewTicker(time.Duration(config.Settings.GoroutineMonitorIntervalSeconds) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		count := runtime.NumGoroutine()
		if count > config.Settings.GoroutineWarnThreshold {
			log.Printf("WARNING: High goroutine count detected: %d", count)
		} else if config.Settings.LogLevel == "DEBUG" {
			log.Printf("Current goroutine count: %d", count)
		}
	}
}

// mainCLI entrypoint for CLI (HTTP client mode)
func mainCLI() {
	// CLI mode skips DB load; acts as HTTP client
	log.SetFlags(log.Ldate | log.Ltime)

	serverURL := config.Settings.CLIServer

	fmt.Printf("Sanctuary CLI - Connecting to %s\n", serverURL)

	cliInstance, err := cli.New(serverURL)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("\nTips:")
		fmt.Println("  1. Make sure the Sanctuary server is running:")
		fmt.Println("     ./sanctuary")
		fmt.Println("  2. Or specify a different server:")
		fmt.Printf("     ./sanctuary --cli --server http://your-server:8080\n")
		os.Exit(1)
	}

	cliInstance.Start()
}

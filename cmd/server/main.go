// @title           Realty CRM Media Backend API
// @version         1.0.0
// @description     Backend API for a solo real-estate agent CRM. Handles property and client records plus the media pipeline: client-side images are optimized to a byte budget, uploaded with thumbnails to Supabase Storage, recorded in Postgres with an explicit display order, and served back through public or time-boxed signed URLs.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"realty-crm-backend/docs"
	"realty-crm-backend/internal/config"
	"realty-crm-backend/internal/database"
	"realty-crm-backend/internal/handlers"
	"realty-crm-backend/internal/middleware"
	"realty-crm-backend/internal/optimizer"
	"realty-crm-backend/internal/services"
	"realty-crm-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set. Migrations will be skipped.")
		log.Println("Please set DATABASE_URL environment variable with your Supabase PostgreSQL connection string")
	}

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	eventsClient := supabase.NewEventsClient(supabaseClient.Supabase)

	// Create database client for direct queries
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL != "" {
		var err error
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize database client: %v", err)
			log.Println("Database operations will be limited. Please configure DATABASE_URL properly.")
		} else {
			defer dbClient.Close()

			// Run migrations
			migrator, err := database.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				log.Printf("Warning: Failed to initialize migrator: %v", err)
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					log.Printf("Warning: Migration failed: %v", err)
				} else {
					log.Println("Migrations completed successfully")
				}
			}
		}
	}

	// Media pipeline
	imageOptimizer := optimizer.New(optimizer.JPEGCodec{}, cfg.MaxImageDimension)

	var mediaService *services.MediaService
	var documentService *services.DocumentService
	if dbClient != nil {
		mediaService = services.NewMediaService(storageClient, dbClient, eventsClient,
			imageOptimizer, cfg.PropertiesBucket, cfg.ImageTargetBytes)
		documentService = services.NewDocumentService(storageClient, dbClient, eventsClient,
			cfg.ClientsBucket)
	}
	// Each resolver defaults to the bucket its URLs live in: property media in
	// the properties bucket, client documents in the clients bucket.
	propertyDownloads := services.NewDownloadService(storageClient, cfg.PropertiesBucket,
		cfg.SignedURLTTLSeconds)
	clientDownloads := services.NewDownloadService(storageClient, cfg.ClientsBucket,
		cfg.SignedURLTTLSeconds)

	// Initialize handlers (dbClient might be nil, handlers guard against this)
	propertiesHandler := handlers.NewPropertiesHandler(dbClient, mediaService)
	clientsHandler := handlers.NewClientsHandler(dbClient, documentService)
	mediaHandler := handlers.NewMediaHandler(dbClient, mediaService, propertyDownloads)
	documentsHandler := handlers.NewDocumentsHandler(cfg, dbClient, mediaService, documentService, clientDownloads)

	// Setup router
	router := gin.Default()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Property routes
	api.POST("/properties", propertiesHandler.CreateProperty)
	api.GET("/properties", propertiesHandler.ListProperties)
	api.GET("/properties/:property_id", propertiesHandler.GetProperty)
	api.DELETE("/properties/:property_id", propertiesHandler.DeleteProperty)

	// Property media
	api.POST("/properties/:property_id/images", mediaHandler.UploadImages)
	api.GET("/properties/:property_id/images", mediaHandler.ListImages)
	api.PUT("/properties/:property_id/images/order", mediaHandler.ReorderImages)
	api.PATCH("/media/:media_id/caption", mediaHandler.UpdateCaption)
	api.DELETE("/media/:media_id", mediaHandler.DeleteMedia)
	api.GET("/media/:media_id/download", mediaHandler.DownloadMedia)

	// Property documents
	api.POST("/properties/:property_id/documents", documentsHandler.UploadPropertyDocument)
	api.GET("/properties/:property_id/documents", documentsHandler.ListPropertyDocuments)

	// Client routes
	api.POST("/clients", clientsHandler.CreateClient)
	api.GET("/clients", clientsHandler.ListClients)
	api.GET("/clients/:client_id", clientsHandler.GetClient)
	api.DELETE("/clients/:client_id", clientsHandler.DeleteClient)

	// Client documents
	api.POST("/clients/:client_id/documents", documentsHandler.UploadClientDocument)
	api.GET("/clients/:client_id/documents", documentsHandler.ListClientDocuments)
	api.DELETE("/client-documents/:document_id", documentsHandler.DeleteClientDocument)
	api.GET("/client-documents/:document_id/download", documentsHandler.DownloadClientDocument)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

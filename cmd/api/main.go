package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"commerce-admin-core/internal/application"
	apiinfra "commerce-admin-core/internal/infrastructure/api"
	"commerce-admin-core/internal/infrastructure/cache"
	"commerce-admin-core/internal/infrastructure/pubsub"
	"commerce-admin-core/internal/infrastructure/repository"
	"commerce-admin-core/internal/infrastructure/storage"
	"commerce-admin-core/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appmiddleware "commerce-admin-core/internal/infrastructure/middleware"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "commerce_admin"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal().Msg("JWT_SECRET environment variable is required")
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("JWT_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			logger.Fatal().Str("JWT_TTL_HOURS", raw).Msg("JWT_TTL_HOURS must be a positive integer")
		}
		tokenTTL = time.Duration(hours) * time.Hour
	}

	maxUploadBytes := int64(10 << 20) // 10 MiB
	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			logger.Fatal().Str("MAX_UPLOAD_BYTES", raw).Msg("MAX_UPLOAD_BYTES must be a positive integer")
		}
		maxUploadBytes = n
	}

	// Connect to MongoDB
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	// Connect to Redis
	redisClient := goredis.NewClient(&goredis.Options{Addr: redisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize repositories
	deliveryRepo, err := repository.NewMongoDeliveryMethodRepository(ctx, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize delivery method repository")
	}
	adminRepo, err := repository.NewMongoAdminRepository(ctx, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize admin repository")
	}

	// One-time deployment migration: backfill currency on legacy documents
	migrated, err := deliveryRepo.MigrateMissingCurrency(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to run currency backfill migration")
	}
	if migrated > 0 {
		logger.Info().Int64("documents", migrated).Msg("Backfilled currency on legacy delivery methods")
	}

	// Initialize catalog pub/sub and audit subscriber
	catalogPubSub := pubsub.NewCatalogPubSub(logger)
	pubsub.StartAuditLogger(ctx, catalogPubSub, logger)

	// Initialize application services
	deliveryService := application.NewDeliveryMethodService(deliveryRepo, catalogPubSub, logger)
	reconciler := application.NewReconciler(deliveryRepo, catalogPubSub, logger)

	tokenStore := cache.NewRedisTokenStore(redisClient)
	authService := application.NewAuthService(adminRepo, tokenStore, logger, jwtSecret, tokenTTL)

	// Select the upload storage backend
	var fileStore ports.FileStore
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "", "local":
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "./uploads"
		}
		fileStore, err = storage.NewLocalFileStore(uploadDir, appURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize local file store")
		}
		logger.Info().Str("dir", uploadDir).Msg("Using local upload storage")
	case "gridfs":
		fileStore, err = storage.NewGridFSFileStore(db, appURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize gridfs file store")
		}
		logger.Info().Msg("Using GridFS upload storage")
	default:
		logger.Fatal().Str("STORAGE_BACKEND", backend).Msg("Unknown storage backend")
	}
	uploadService := application.NewUploadService(fileStore, logger, maxUploadBytes)

	// Seed the catalog and the bootstrap admin
	if err := deliveryService.EnsureSeeded(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed delivery methods")
	}
	if err := authService.EnsureRootAdmin(ctx, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"), os.Getenv("ADMIN_NAME")); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ensure root admin")
	}

	// Initialize handlers
	deliveryHandler := apiinfra.NewDeliveryMethodHandler(deliveryService, reconciler, logger)
	authHandler := apiinfra.NewAuthHandler(authService, logger)
	uploadHandler := apiinfra.NewUploadHandler(uploadService, logger, maxUploadBytes)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.SecurityHeaders())
	r.Use(appmiddleware.Instrument())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus metrics - public
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation - public
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // The URL pointing to API definition
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterPublicRoutes(r)

		// Routes requiring an admin token
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireAdmin(authService, logger))
			authHandler.RegisterProtectedRoutes(r)
			deliveryHandler.RegisterRoutes(r)
			uploadHandler.RegisterRoutes(r)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

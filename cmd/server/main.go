package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/spiritsvault/spirits-vault-backend/internal/config"
	"github.com/spiritsvault/spirits-vault-backend/internal/database"
	"github.com/spiritsvault/spirits-vault-backend/internal/handlers"
	"github.com/spiritsvault/spirits-vault-backend/internal/middleware"
	"github.com/spiritsvault/spirits-vault-backend/internal/repository"
	"github.com/spiritsvault/spirits-vault-backend/internal/routes"
	"github.com/spiritsvault/spirits-vault-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.JWTSecret == "default_secret_key" {
		log.Println("⚠️  WARNING: JWT_SECRET not set, using the insecure default.")
		log.Println("   Set it in your environment: JWT_SECRET=<random-secret>")
	}

	// Connect to MongoDB; the app cannot run without it
	log.Printf("Connecting to MongoDB...")
	mongoDB, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer mongoDB.Disconnect()

	// Connect to Redis; catalog caching degrades gracefully without it
	log.Printf("Connecting to Redis...")
	var redisClient *redis.Client
	if redisClient, err = database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		log.Println("Spirit catalog caching will not be available")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(mongoDB.DB)
	spiritRepo := repository.NewSpiritRepository(mongoDB.DB)
	postRepo := repository.NewPostRepository(mongoDB.DB)

	// Unique username/email indexes back the registration uniqueness checks
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatal("Failed to ensure user indexes: ", err)
	}
	if err := postRepo.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure post indexes: %v", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret, services.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	cache := services.NewCacheService(redisClient)
	spiritService := services.NewSpiritService(spiritRepo, cache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo, spiritService)
	spiritHandler := handlers.NewSpiritHandler(spiritService)
	postHandler := handlers.NewPostHandler(postRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	requireAuth := middleware.RequireAuth(tokenService, userRepo)
	routes.SetupRoutes(r, authHandler, userHandler, spiritHandler, postHandler, requireAuth)

	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  POST   /api/auth/register")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/users/profile")
	log.Println("  PUT    /api/users/profile")
	log.Println("  GET    /api/users/collection")
	log.Println("  POST   /api/users/collection")
	log.Println("  DELETE /api/users/collection/{spiritId}")
	log.Println("  GET    /api/spirits")
	log.Println("  GET    /api/spirits/{spiritId}")
	log.Println("  POST   /api/spirits")
	log.Println("  GET    /api/posts")
	log.Println("  POST   /api/posts")
	log.Println("  POST   /api/posts/{postId}/cheers")
	log.Println("  DELETE /api/posts/{postId}/cheers")
	log.Println("  POST   /api/posts/{postId}/comments")

	log.Printf("🚀 SpiritsVault backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

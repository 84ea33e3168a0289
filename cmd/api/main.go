package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/funaab-ict/clearance-service/internal/adapters/handler"
	"github.com/funaab-ict/clearance-service/internal/adapters/middleware"
	"github.com/funaab-ict/clearance-service/internal/adapters/repository"
	"github.com/funaab-ict/clearance-service/internal/config"
	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
	"github.com/funaab-ict/clearance-service/internal/core/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	tagRepo := repository.NewTagRepository(db)
	clearanceRepo := repository.NewClearanceRepository(db)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis")

	authService := services.NewAuthService(userRepo, cfg.JWTPrivateKey, cfg.TokenTTL, redisClient)
	userService := services.NewUserService(userRepo)
	studentService := services.NewStudentService(studentRepo, userRepo, clearanceRepo, tagRepo)
	deviceService := services.NewDeviceService(deviceRepo)
	tagService := services.NewTagService(tagRepo, userRepo, studentRepo, clearanceRepo)
	clearanceService := services.NewClearanceService(userRepo, studentRepo, clearanceRepo)
	scanService := services.NewScanCoordinator(deviceRepo)

	if err := ensureInitialAdmin(ctx, cfg, userService); err != nil {
		log.Fatalf("failed to ensure initial admin: %v", err)
	}

	authMW := middleware.NewAuthMiddleware(cfg.JWTPublicKey, redisClient, config.NewCircuitBreaker("Redis-Auth"))
	deviceMW := middleware.NewDeviceMiddleware(deviceRepo)

	router := handler.NewRouter(handler.RouterConfig{
		Auth:      handler.NewAuthHandler(authService, userService),
		Users:     handler.NewUserHandler(userService),
		Students:  handler.NewStudentHandler(studentService),
		Devices:   handler.NewDeviceHandler(deviceService),
		Tags:      handler.NewTagHandler(tagService),
		Scanners:  handler.NewScannerHandler(scanService),
		Clearance: handler.NewClearanceHandler(clearanceService),
		RFID:      handler.NewRFIDHandler(tagService),
		Health:    handler.NewHealthHandler(db, redisClient),

		AuthMW:   authMW,
		DeviceMW: deviceMW,

		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Starting server on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}

// ensureInitialAdmin seeds the first admin account from the environment so a
// fresh deployment can be logged into. Nothing happens when the username is
// unset or already taken.
func ensureInitialAdmin(ctx context.Context, cfg *config.Config, users ports.UserService) error {
	if cfg.InitialAdminUsername == "" || cfg.InitialAdminPassword == "" {
		log.Println("Initial admin not configured, skipping seed")
		return nil
	}

	if _, err := users.GetByUsername(ctx, cfg.InitialAdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	_, err := users.Create(ctx, ports.CreateUserInput{
		Username: cfg.InitialAdminUsername,
		Password: cfg.InitialAdminPassword,
		Email:    cfg.InitialAdminEmail,
		FullName: "System Administrator",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("Seeded initial admin %q", cfg.InitialAdminUsername)
	return nil
}

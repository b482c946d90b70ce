package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ladder_zone/internal/api"
	"ladder_zone/internal/app/service"
	"ladder_zone/internal/common/security"
	"ladder_zone/internal/domain/repository"
	"ladder_zone/internal/platform/cache"
	"ladder_zone/internal/platform/config"
	"ladder_zone/internal/platform/database"
	"ladder_zone/internal/platform/judge"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.EnsureSchema(database.DB); err != nil {
		log.Fatalf("Could not ensure schema: %v", err)
	}
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)
	tableRepo := repository.NewPgTableRepository(database.DB)
	counterRepo := repository.NewPgCounterRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, tableRepo)
	questionService := service.NewQuestionService(questionRepo, userRepo, counterRepo)
	ladderService := service.NewLadderService(tableRepo, counterRepo)
	adminService := service.NewAdminService(userRepo, questionRepo, tableRepo)

	judgeClient := judge.NewClient(config.AppConfig.JudgeBaseURL, config.AppConfig.JudgeFetchTimeout)
	judgeService := service.NewJudgeService(judgeClient, cache.RDB, config.AppConfig.JudgeCacheTTL)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, questionService, ladderService, adminService, judgeService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // judge fetches can run long
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}

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

	"audit-checklist/internal/config"
	"audit-checklist/internal/database"
	"audit-checklist/internal/handlers"
	"audit-checklist/internal/llm"
	"audit-checklist/internal/middleware"
	"audit-checklist/internal/questions"
	"audit-checklist/internal/server"
	"audit-checklist/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.RequireServer(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database error: %v", err)
	}
	if cfg.SeedUsers {
		database.SeedDefaultUsers(db)
	}

	var provider questions.Provider = llm.Unavailable{}
	if cfg.OpenAIKey != "" {
		provider = llm.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		log.Println("OPENAI_API_KEY is not set, checklists will use the fallback questions")
	}

	svc := services.New(services.Deps{
		DB:         db,
		Engine:     questions.NewEngine(provider, cfg.OpenAITimeout),
		UploadDir:  cfg.UploadDir,
		ReportsDir: cfg.ReportsDir,
	})

	r := server.NewRouter(handlers.New(db, svc, cfg.MaxUploadBytes), server.Options{
		SessionSecret: cfg.SessionSecret,
		AuthLimiter:   middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

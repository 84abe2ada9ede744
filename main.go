package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Galaktikon/better-loanz-fintech-capstone/config"
	httpLayer "github.com/Galaktikon/better-loanz-fintech-capstone/http"
	"github.com/Galaktikon/better-loanz-fintech-capstone/plaid"
	"github.com/Galaktikon/better-loanz-fintech-capstone/repository"
	"github.com/Galaktikon/better-loanz-fintech-capstone/service"
)

func main() {
	cfg := config.Load()
	log.Info("Better Loanz API server starting",
		"plaid", cfg.PlaidEnabled(), "plaid_env", cfg.PlaidEnv, "ai", cfg.AIEnabled())

	userRepo := repository.NewUserRepositoryMemory()
	loanRepo := repository.NewLoanRepositoryMemory()
	tokenRepo := repository.NewAccessTokenRepositoryMemory()

	var sessionRepo repository.SessionRepository
	if cfg.RedisAddr != "" {
		sessionRepo = repository.NewSessionRepositoryRedis(cfg.RedisAddr)
		log.Info("using redis session store", "addr", cfg.RedisAddr)
	} else {
		sessionRepo = repository.NewSessionRepositoryMemory()
	}

	plaidClient := plaid.NewClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnv)

	authService := service.NewAuthService(userRepo, sessionRepo, loanRepo)
	loanService := service.NewLoanService(loanRepo, tokenRepo, plaidClient)
	aiService := service.NewAIService(cfg.OpenAIAPIKey)

	authHandler := httpLayer.NewAuthHandler(authService)
	plaidHandler := httpLayer.NewPlaidHandler(loanService, authService)
	loanHandler := httpLayer.NewLoanHandler(loanService)
	adviceHandler := httpLayer.NewAdviceHandler(aiService, loanService)

	rateLimiter := httpLayer.NewRateLimiter(30, time.Minute)
	defer rateLimiter.Stop()

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter,
			httpLayer.AuthMiddleware(authService, h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/hello", httpLayer.Hello)

	mux.Handle("/api/auth/signup", limited(authHandler.Signup))
	mux.Handle("/api/auth/login", limited(authHandler.Login))
	mux.Handle("/api/auth/logout", limited(authHandler.Logout))

	mux.Handle("/api/plaid/create_link_token", limited(plaidHandler.CreateLinkToken))
	mux.Handle("/api/plaid/exchange_public_token", authed(plaidHandler.ExchangePublicToken))
	mux.Handle("/api/plaid/get_liabilities", authed(plaidHandler.GetLiabilities))
	mux.Handle("/api/loans/sync", authed(plaidHandler.SyncLoans))

	mux.Handle("/api/loans", authed(loanHandler.ListLoans))
	mux.Handle("/api/loans/amortization", authed(loanHandler.Amortization))

	mux.Handle("/api/ai/advice", authed(adviceHandler.Advice))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpLayer.CORSMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("API listening", "addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("server failed", "error", err)
		return
	case <-quit:
		log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}

	log.Info("server exited")
}

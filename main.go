package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insurancefinder/internal/blog"
	"insurancefinder/internal/companies"
	"insurancefinder/internal/config"
	"insurancefinder/internal/handlers"
	"insurancefinder/internal/linkcheck"
	"insurancefinder/internal/logger"
	"insurancefinder/internal/middleware"
	sentryutil "insurancefinder/internal/sentry"
)

func main() {
	// Load configuration from .env and environment variables
	config.Load()

	// Initialize Sentry (non-blocking if SENTRY_DSN is empty)
	sentryutil.Init()
	defer sentryutil.Flush()

	// Persistent plan counter
	handlers.InitCounter(config.Cfg.CounterFile)
	defer handlers.StopCounter()

	// Load blog posts
	if err := blog.LoadAll(config.Cfg.BlogDir); err != nil {
		log.Printf("blog: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Outbound link check at boot + periodic (respects config)
	if config.Cfg.LinkCheckEnabled {
		go linkcheck.Run(ctx, config.Cfg.LinkCheckDelay, config.Cfg.LinkCheckInterval, companies.All())
	}

	limiter := handlers.NewRateLimiter(
		config.Cfg.RateLimitRPS,
		config.Cfg.RateLimitBurst,
		time.Second,
	)
	defer limiter.Stop()

	// Wrap with middleware: Recovery → RequestID → SecurityHeaders → Gzip (if enabled) → Rate Limiter
	var handler http.Handler = limiter.Middleware(handlers.NewRouter())
	if config.Cfg.GzipEnabled {
		handler = middleware.Gzip(handler)
	}
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	srv := &http.Server{
		Addr:         ":" + config.Cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("server shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	logger.Info("server starting", map[string]interface{}{"port": config.Cfg.Port})
	fmt.Printf("Insurance Finder running on http://localhost:%s\n", config.Cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sentryutil.CaptureError(err, map[string]string{"component": "server"})
		log.Fatalf("server: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aura/internal/common"
	"aura/internal/dbmysql"
	"aura/internal/di"
	"aura/internal/feed"

	"github.com/gorilla/mux"
)

func main() {
	log.Println("Starting Aura server...")

	app, err := di.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := dbmysql.Migrate(app.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("database migration completed")

	router := mux.NewRouter()
	app.UserHandler.RegisterRoutes(router, common.AuthMiddleware)
	app.FeedHandlers.RegisterRoutes(router, common.AuthMiddleware)
	app.MediaHandler.RegisterRoutes(router, common.AuthMiddleware)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// optional counter reconciliation job
	interval := time.Duration(app.Config.Feed.ReconcileIntervalMins) * time.Minute
	feed.StartReconciler(ctx, app.FeedService, interval)

	server := &http.Server{
		Addr:         app.Config.Server.Host + ":" + app.Config.Server.Port,
		Handler:      loggingMiddleware(router),
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Aura server running on port %s", app.Config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Aura server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := app.Mongo.Close(shutdownCtx); err != nil {
		log.Printf("Mongo disconnect error: %v", err)
	}
	log.Println("Aura server stopped")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

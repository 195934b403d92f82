package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/config"
	"cedra_storefront/internal/database"
	"cedra_storefront/internal/handlers"
	"cedra_storefront/internal/middleware"
	"cedra_storefront/internal/routes"
)

func main() {
	config.Load()
	cfg := config.FromEnv()

	if cfg.SessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	sessions, backends, err := database.OpenSessionStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("❌ Échec initialisation du stockage de session (%s): %v", cfg.StoreBackend, err)
	}
	defer backends.Close()
	log.Printf("✅ Stockage de session: %s", cfg.StoreBackend)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		Storefront: &handlers.Storefront{
			Sessions: sessions,
			API: api.NewClient(api.Options{
				BaseURL:     cfg.APIBaseURL,
				Development: cfg.IsDevelopment(),
			}),
			APIBaseURL:  cfg.APIBaseURL,
			FrontendURL: cfg.FrontendURL,
		},
		Cookies: middleware.NewCookieStore(cfg.SessionSecret, !cfg.IsDevelopment()),
		Redis:   backends.Redis,
		Origins: []string{cfg.FrontendURL},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Storefront Cedra lancé sur le port %s (API: %s)", cfg.Port, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Erreur serveur: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Arrêt du serveur...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Arrêt forcé: %v", err)
	}
	log.Println("✅ Serveur arrêté")
}

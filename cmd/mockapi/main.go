// Commande mockapi : API boutique amont minimale pour le développement local.
package main

import (
	"log"
	"time"

	"cedra_storefront/internal/config"
	"cedra_storefront/internal/mockapi"
	"cedra_storefront/internal/models"
)

func main() {
	config.Load()
	cfg := config.FromEnv()

	s := mockapi.New(cfg.JWTSecret)

	if cfg.IsDevelopment() {
		seed(s)
	}

	log.Printf("🚀 Mock API lancée sur le port %s", cfg.MockAPIPort)
	if err := s.Router().Run(":" + cfg.MockAPIPort); err != nil {
		log.Fatalf("❌ Erreur serveur: %v", err)
	}
}

// seed crée un compte admin et quelques coupons de démonstration
func seed(s *mockapi.Server) {
	if _, err := s.AddUser("Admin", "admin@cedra.test", "admin123", true); err != nil {
		log.Printf("⚠️ Compte admin non créé: %v", err)
	}

	maxDiscount := 50.0
	s.AddCoupon(models.Coupon{Code: "WELCOME10", Type: "percentage", Value: 10, MaxAmount: &maxDiscount, IsActive: true})
	s.AddCoupon(models.Coupon{Code: "FIVEOFF", Type: "fixed", Value: 5, MinAmount: 30, IsActive: true})
	s.AddCoupon(models.Coupon{Code: "FREESHIP", Type: "free_shipping", IsActive: true, ExpiresAt: time.Now().AddDate(0, 1, 0)})
	log.Println("✅ Données de démonstration chargées")
}

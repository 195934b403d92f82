package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// PagePathHeader porte la page affichée côté navigateur (garde anti-boucle vers /login)
const PagePathHeader = "X-Page-Path"

// CORS autorise le front à appeler le service avec ses cookies
func CORS(origins ...string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", PagePathHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Package mockapi rejoue le contrat HTTP de l'API boutique amont
// (utilisateurs, coupons, newsletter) pour le développement local et les tests.
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"cedra_storefront/internal/models"
)

type account struct {
	user         models.User
	passwordHash string
}

type Server struct {
	mu          sync.RWMutex
	accounts    map[string]*account // email -> compte
	coupons     map[string]models.Coupon
	subscribers map[string]time.Time
	secret      []byte
	tokenTTL    time.Duration
	now         func() time.Time
}

func New(secret string) *Server {
	if secret == "" {
		secret = "super_secret"
	}
	return &Server{
		accounts:    make(map[string]*account),
		coupons:     make(map[string]models.Coupon),
		subscribers: make(map[string]time.Time),
		secret:      []byte(secret),
		tokenTTL:    24 * time.Hour,
		now:         time.Now,
	}
}

// Router enregistre les routes consommées par le client storefront
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/api/users")
	users.POST("/login", s.login)
	users.POST("", s.register)
	users.GET("/profile", s.authRequired(), s.profile)
	users.PUT("/profile", s.authRequired(), s.updateProfile)

	r.POST("/api/coupons/validate", s.validateCoupon)

	r.POST("/api/subscribers", s.subscribe)
	r.DELETE("/api/subscribers/:email", s.authRequired(), s.unsubscribe)

	return r
}

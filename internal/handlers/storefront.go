package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/auth"
	"cedra_storefront/internal/cart"
	"cedra_storefront/internal/middleware"
	"cedra_storefront/internal/session"
	"cedra_storefront/internal/wishlist"
)

const PagePathHeader = middleware.PagePathHeader

// Storefront regroupe les dépendances partagées par les handlers
type Storefront struct {
	Sessions    session.Factory
	API         *api.Client
	APIBaseURL  string
	FrontendURL string
}

// scope est l'état d'une session navigateur le temps d'une requête
type scope struct {
	store    session.Store
	nav      *api.RecordingNavigator
	client   *api.Client
	cart     *cart.Aggregator
	auth     *auth.Manager
	wishlist *wishlist.Wishlist
}

func (s *Storefront) open(c *gin.Context, defaultPath string) *scope {
	ctx := c.Request.Context()
	store := s.Sessions(c.GetString(middleware.SessionIDKey))

	page := c.GetHeader(PagePathHeader)
	if page == "" {
		page = defaultPath
	}
	nav := api.NewRecordingNavigator(page)
	client := s.API.WithSession(store, nav)

	m := auth.NewManager(store, client, nav)
	m.Hydrate(ctx)

	return &scope{
		store:    store,
		nav:      nav,
		client:   client,
		cart:     cart.Load(ctx, store, client),
		auth:     m,
		wishlist: wishlist.Load(ctx, store),
	}
}

// respond ajoute la redirection demandée pendant la requête, s'il y en a une
func (sc *scope) respond(c *gin.Context, status int, body gin.H) {
	if to := sc.nav.Redirect(); to != "" {
		body["redirect"] = to
	}
	c.JSON(status, body)
}

func (sc *scope) fail(c *gin.Context, err error, message string) {
	sc.respond(c, statusFor(err), gin.H{"error": message})
}

// statusFor traduit une erreur métier ou amont en code HTTP
func statusFor(err error) int {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Status >= 500 {
			return http.StatusBadGateway
		}
		return apiErr.Status
	case errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidPrice),
		errors.Is(err, cart.ErrInvalidDiscount),
		errors.Is(err, cart.ErrQuantityOutOfRange),
		errors.Is(err, wishlist.ErrInvalidProduct):
		return http.StatusBadRequest
	}

	var couponErr *cart.CouponError
	if errors.As(err, &couponErr) && couponErr.Err == nil {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// userMessage renvoie le message destiné au bandeau d'erreur
func userMessage(err error, fallback string) string {
	var couponErr *cart.CouponError
	if errors.As(err, &couponErr) {
		return couponErr.Message
	}
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return api.MessageOf(err, fallback)
}

// sizeParam : "-" désigne une ligne sans taille
func sizeParam(c *gin.Context) string {
	size := c.Param("size")
	if size == "-" {
		return ""
	}
	return strings.TrimSpace(size)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

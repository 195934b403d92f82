package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionCookieName = "cedra_storefront"
	SessionIDKey      = "session_id"

	sessionMaxAge = 86400 * 30
)

// NewCookieStore signe le cookie de session navigateur avec secret
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// BrowserSession attribue à chaque navigateur un identifiant opaque stable,
// exposé aux handlers sous SessionIDKey.
func BrowserSession(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c.Request, SessionCookieName)
		if err != nil {
			// cookie altéré ou clé changée : on repart d'une session neuve
			log.Printf("⚠️ Cookie de session invalide: %v", err)
		}

		id, _ := sess.Values[SessionIDKey].(string)
		if _, parseErr := uuid.Parse(id); parseErr != nil {
			id = uuid.NewString()
			sess.Values[SessionIDKey] = id
			if err := sess.Save(c.Request, c.Writer); err != nil {
				log.Printf("❌ Sauvegarde du cookie de session: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session unavailable"})
				return
			}
		}

		c.Set(SessionIDKey, id)
		c.Next()
	}
}

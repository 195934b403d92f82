// Package auth garde l'identité de la session navigateur : jeton, profil
// et opérations login / signup / logout / profil.
package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/models"
	"cedra_storefront/internal/session"
)

// Backend regroupe les appels amont utilisés par le Manager
type Backend interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	ProfileWithToken(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
}

type Manager struct {
	store   session.Store
	backend Backend
	nav     api.Navigator
	now     func() time.Time

	token string
	user  *models.User
}

func NewManager(store session.Store, backend Backend, nav api.Navigator) *Manager {
	return &Manager{
		store:   store,
		backend: backend,
		nav:     nav,
		now:     time.Now,
	}
}

// Hydrate relit jeton et profil. Un JWT expiré est purgé de la session.
func (m *Manager) Hydrate(ctx context.Context) {
	m.token, m.user = "", nil
	if m.store == nil {
		return
	}

	token, err := m.store.Get(ctx, session.KeyToken)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Printf("⚠️ Lecture du token impossible: %v", err)
		}
		return
	}

	if m.expired(token) {
		log.Println("🔐 Token expiré, session purgée")
		m.forget(ctx)
		return
	}

	var user models.User
	if err := session.GetJSON(ctx, m.store, session.KeyUser, &user); err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Printf("⚠️ Profil illisible: %v", err)
		}
	} else {
		m.user = &user
	}
	m.token = token
}

// expired lit "exp" sans vérifier la signature : la clé reste côté API.
// Un jeton opaque (non JWT) est conservé.
func (m *Manager) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !m.now().Before(exp.Time)
}

func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &AuthError{Message: "Please fill in all fields", Err: ErrMissingFields}
	}

	user, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return nil, &AuthError{Message: api.MessageOf(err, "Login failed"), Err: err}
	}
	m.remember(ctx, user.Token, user)
	log.Printf("✅ Connexion réussie: %s", user.Email)
	return m.CurrentUser(), nil
}

func (m *Manager) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &AuthError{Message: "Please fill in all fields", Err: ErrMissingFields}
	}

	user, err := m.backend.Register(ctx, strings.TrimSpace(name), email, password)
	if err != nil {
		return nil, &AuthError{Message: api.MessageOf(err, "Registration failed"), Err: err}
	}
	m.remember(ctx, user.Token, user)
	log.Printf("✅ Inscription réussie: %s", user.Email)
	return m.CurrentUser(), nil
}

// LoginWithGoogle termine le flux OAuth : l'API a déjà émis le jeton,
// il reste à charger le profil avec.
func (m *Manager) LoginWithGoogle(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &AuthError{Message: "Google login failed", Err: ErrMissingFields}
	}

	user, err := m.backend.ProfileWithToken(ctx, token)
	if err != nil {
		return nil, &AuthError{Message: api.MessageOf(err, "Google login failed"), Err: err}
	}
	m.remember(ctx, token, user)
	log.Printf("✅ Connexion Google réussie: %s", user.Email)
	return m.CurrentUser(), nil
}

// Logout vide jeton et profil puis renvoie vers /login
func (m *Manager) Logout(ctx context.Context) {
	m.forget(ctx)
	if m.nav != nil {
		m.nav.Navigate(api.LoginPath)
	}
	log.Println("🔐 Déconnexion")
}

func (m *Manager) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	if !m.IsAuthenticated() {
		return nil, &AuthError{Message: "Please log in first", Err: ErrNotAuthenticated}
	}

	updated, err := m.backend.UpdateProfile(ctx, update)
	if err != nil {
		m.dropIfRejected(err)
		return nil, &AuthError{Message: api.MessageOf(err, "Profile update failed"), Err: err}
	}
	m.merge(ctx, updated)
	return m.CurrentUser(), nil
}

// UpdatePassword refuse localement une confirmation différente, sans appel amont
func (m *Manager) UpdatePassword(ctx context.Context, password, confirm string) error {
	if password == "" {
		return &AuthError{Message: "Please enter a new password", Err: ErrMissingFields}
	}
	if password != confirm {
		return &AuthError{Message: "Passwords do not match", Err: ErrPasswordMismatch}
	}
	if !m.IsAuthenticated() {
		return &AuthError{Message: "Please log in first", Err: ErrNotAuthenticated}
	}

	updated, err := m.backend.UpdateProfile(ctx, models.ProfileUpdate{Password: &password})
	if err != nil {
		m.dropIfRejected(err)
		return &AuthError{Message: api.MessageOf(err, "Password update failed"), Err: err}
	}
	m.merge(ctx, updated)
	return nil
}

// CurrentUser renvoie une copie du profil, nil si personne n'est connecté
func (m *Manager) CurrentUser() *models.User {
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool { return m.token != "" }

func (m *Manager) IsAdmin() bool { return m.user != nil && m.user.IsAdmin }

func (m *Manager) Token() string { return m.token }

// merge applique la réponse serveur au profil courant, jeton compris s'il a été renouvelé
func (m *Manager) merge(ctx context.Context, updated *models.User) {
	user := models.User{}
	if m.user != nil {
		user = *m.user
	}
	if updated.ID != "" {
		user.ID = updated.ID
	}
	if updated.Name != "" {
		user.Name = updated.Name
	}
	if updated.Email != "" {
		user.Email = updated.Email
	}
	if updated.Avatar != "" {
		user.Avatar = updated.Avatar
	}
	user.IsAdmin = updated.IsAdmin

	token := m.token
	if updated.Token != "" {
		token = updated.Token
	}
	m.remember(ctx, token, &user)
}

// dropIfRejected aligne l'état mémoire sur un 401 : le client API a déjà vidé le store
func (m *Manager) dropIfRejected(err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		m.token, m.user = "", nil
	}
}

func (m *Manager) remember(ctx context.Context, token string, user *models.User) {
	u := *user
	u.Token = token
	m.token = token
	m.user = &u

	if m.store == nil {
		return
	}
	if err := m.store.Set(ctx, session.KeyToken, token); err != nil {
		log.Printf("⚠️ Token non persisté: %v", err)
	}
	if err := session.SetJSON(ctx, m.store, session.KeyUser, u); err != nil {
		log.Printf("⚠️ Profil non persisté: %v", err)
	}
}

func (m *Manager) forget(ctx context.Context) {
	m.token, m.user = "", nil
	if m.store == nil {
		return
	}
	for _, key := range []string{session.KeyToken, session.KeyUser} {
		if err := m.store.Remove(ctx, key); err != nil {
			log.Printf("⚠️ Suppression de %s impossible: %v", key, err)
		}
	}
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/auth"
	"cedra_storefront/internal/models"
)

// 🔐 POST /auth/login
func (s *Storefront) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sc := s.open(c, api.LoginPath)
	user, err := sc.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		log.Printf("❌ Connexion refusée pour %s", input.Email)
		sc.fail(c, err, userMessage(err, "Login failed"))
		return
	}
	sc.respond(c, http.StatusOK, gin.H{"user": user})
}

// 🔐 POST /auth/signup
func (s *Storefront) Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sc := s.open(c, "/register")
	user, err := sc.auth.Signup(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		sc.fail(c, err, userMessage(err, "Registration failed"))
		return
	}
	sc.respond(c, http.StatusCreated, gin.H{"user": user})
}

// 🔐 POST /auth/logout
func (s *Storefront) Logout(c *gin.Context) {
	sc := s.open(c, "")
	sc.auth.Logout(c.Request.Context())
	sc.respond(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// 🔐 GET /auth/google : le navigateur part vers l'API qui gère la redirection Google
func (s *Storefront) GoogleStart(c *gin.Context) {
	c.Redirect(http.StatusFound, auth.GoogleStartURL(s.APIBaseURL, s.FrontendURL+"/oauth/callback"))
}

// 🔐 GET /auth/google/callback?token=...
func (s *Storefront) GoogleCallback(c *gin.Context) {
	sc := s.open(c, "/oauth/callback")
	user, err := sc.auth.LoginWithGoogle(c.Request.Context(), c.Query("token"))
	if err != nil {
		sc.fail(c, err, userMessage(err, "Google login failed"))
		return
	}
	sc.respond(c, http.StatusOK, gin.H{"user": user})
}

// 🔐 GET /auth/me
func (s *Storefront) Me(c *gin.Context) {
	sc := s.open(c, "")
	sc.respond(c, http.StatusOK, gin.H{
		"user":            sc.auth.CurrentUser(),
		"isAuthenticated": sc.auth.IsAuthenticated(),
		"isAdmin":         sc.auth.IsAdmin(),
	})
}

// 🔐 PUT /auth/profile
func (s *Storefront) UpdateProfile(c *gin.Context) {
	var input struct {
		Name   *string `json:"name"`
		Email  *string `json:"email"`
		Avatar *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sc := s.open(c, "/profile")
	user, err := sc.auth.UpdateProfile(c.Request.Context(), models.ProfileUpdate{
		Name:   input.Name,
		Email:  input.Email,
		Avatar: input.Avatar,
	})
	if err != nil {
		sc.fail(c, err, userMessage(err, "Profile update failed"))
		return
	}
	sc.respond(c, http.StatusOK, gin.H{"user": user})
}

// 🔐 PUT /auth/password
func (s *Storefront) UpdatePassword(c *gin.Context) {
	var input struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sc := s.open(c, "/profile")
	if err := sc.auth.UpdatePassword(c.Request.Context(), input.Password, input.ConfirmPassword); err != nil {
		sc.fail(c, err, userMessage(err, "Password update failed"))
		return
	}
	sc.respond(c, http.StatusOK, gin.H{"message": "Password updated"})
}

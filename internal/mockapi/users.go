package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cedra_storefront/internal/models"
)

var ErrEmailTaken = errors.New("email already registered")

// AddUser crée un compte directement (fixtures)
func (s *Server) AddUser(name, email, password string, isAdmin bool) (models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.accounts[key]; exists {
		return models.User{}, ErrEmailTaken
	}
	acc := &account{
		user: models.User{
			ID:      uuid.NewString(),
			Name:    name,
			Email:   email,
			IsAdmin: isAdmin,
		},
		passwordHash: hash,
	}
	s.accounts[key] = acc
	return acc.user, nil
}

func (s *Server) register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all fields"})
		return
	}

	user, err := s.AddUser(input.Name, input.Email, input.Password, false)
	if errors.Is(err, ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		return
	}

	s.respondWithToken(c, http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
		return
	}

	s.mu.RLock()
	acc, ok := s.accounts[strings.ToLower(input.Email)]
	s.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if match, err := verifyPassword(input.Password, acc.passwordHash); err != nil || !match {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	s.respondWithToken(c, http.StatusOK, acc.user)
}

func (s *Server) respondWithToken(c *gin.Context, status int, user models.User) {
	token, err := s.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
		return
	}
	user.Token = token
	c.JSON(status, user)
}

func (s *Server) profile(c *gin.Context) {
	acc := s.accountFor(c)
	if acc == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var input struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Avatar   *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
		return
	}

	acc := s.accountFor(c)
	if acc == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if input.Password != nil {
		if len(*input.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
			return
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating password"})
			return
		}
		s.mu.Lock()
		acc.passwordHash = hash
		s.mu.Unlock()
	}

	s.mu.Lock()
	if input.Name != nil {
		acc.user.Name = *input.Name
	}
	if input.Avatar != nil {
		acc.user.Avatar = *input.Avatar
	}
	if input.Email != nil && !strings.EqualFold(*input.Email, acc.user.Email) {
		newKey := strings.ToLower(*input.Email)
		if _, taken := s.accounts[newKey]; taken {
			s.mu.Unlock()
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
			return
		}
		delete(s.accounts, strings.ToLower(acc.user.Email))
		acc.user.Email = *input.Email
		s.accounts[newKey] = acc
	}
	user := acc.user
	s.mu.Unlock()

	s.respondWithToken(c, http.StatusOK, user)
}

func (s *Server) accountFor(c *gin.Context) *account {
	userID := c.GetString("user_id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.user.ID == userID {
			return acc
		}
	}
	return nil
}

package mockapi

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) subscribe(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
		return
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid email"})
		return
	}

	key := strings.ToLower(input.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subscribers[key]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already subscribed"})
		return
	}
	s.subscribers[key] = s.now()
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
}

func (s *Server) unsubscribe(c *gin.Context) {
	key := strings.ToLower(c.Param("email"))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subscribers[key]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subscriber not found"})
		return
	}
	delete(s.subscribers, key)
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

// Subscribed indique si l'email est inscrit
func (s *Server) Subscribed(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.subscribers[strings.ToLower(email)]
	return ok
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 📧 POST /subscribe
func (s *Storefront) Subscribe(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your email"})
		return
	}

	sc := s.open(c, "")
	msg, err := sc.client.Subscribe(c.Request.Context(), strings.TrimSpace(input.Email))
	if err != nil {
		sc.fail(c, err, userMessage(err, "Subscription failed"))
		return
	}
	if msg == "" {
		msg = "Subscribed"
	}
	sc.respond(c, http.StatusOK, gin.H{"message": msg})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cedra_storefront/internal/models"
)

// 🟢 GET /wishlist
func (s *Storefront) GetWishlist(c *gin.Context) {
	sc := s.open(c, "/wishlist")
	sc.respond(c, http.StatusOK, gin.H{"items": sc.wishlist.Items()})
}

// 🟢 POST /wishlist
func (s *Storefront) AddToWishlist(c *gin.Context) {
	var input struct {
		Product models.Product `json:"product"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sc := s.open(c, "/product/"+input.Product.ID)
	added, err := sc.wishlist.Add(c.Request.Context(), input.Product)
	if err != nil {
		sc.fail(c, err, err.Error())
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	sc.respond(c, status, gin.H{"items": sc.wishlist.Items()})
}

// 🔴 DELETE /wishlist/:productId
func (s *Storefront) RemoveFromWishlist(c *gin.Context) {
	sc := s.open(c, "/wishlist")
	if !sc.wishlist.Remove(c.Request.Context(), c.Param("productId")) {
		sc.respond(c, http.StatusNotFound, gin.H{"error": "Product not in wishlist"})
		return
	}
	sc.respond(c, http.StatusOK, gin.H{"items": sc.wishlist.Items()})
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cedra_storefront/internal/cart"
	"cedra_storefront/internal/models"
)

func cartView(a *cart.Aggregator) gin.H {
	return gin.H{
		"items":  a.Items(),
		"coupon": a.Coupon(),
		"totals": a.Totals(),
	}
}

// 🟢 GET /cart
func (s *Storefront) GetCart(c *gin.Context) {
	sc := s.open(c, "/cart")
	sc.respond(c, http.StatusOK, cartView(sc.cart))
}

// 🟢 POST /cart/items
func (s *Storefront) AddCartItem(c *gin.Context) {
	var input struct {
		Product  models.Product `json:"product"`
		Size     string         `json:"size"`
		Quantity int            `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	sc := s.open(c, "/product/"+input.Product.ID)
	res, err := sc.cart.AddItem(c.Request.Context(), input.Product, input.Size, input.Quantity)
	if err != nil {
		sc.fail(c, err, err.Error())
		return
	}

	log.Printf("🛒 %s (%s) %s", input.Product.ID, input.Size, res)
	body := cartView(sc.cart)
	body["result"] = res.String()
	sc.respond(c, http.StatusOK, body)
}

// 🟡 PUT /cart/items/:productId/:size
func (s *Storefront) UpdateCartItem(c *gin.Context) {
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sc := s.open(c, "/cart")
	if err := sc.cart.UpdateQuantity(c.Request.Context(), c.Param("productId"), sizeParam(c), input.Quantity); err != nil {
		sc.fail(c, err, err.Error())
		return
	}
	sc.respond(c, http.StatusOK, cartView(sc.cart))
}

// 🔴 DELETE /cart/items/:productId/:size
func (s *Storefront) RemoveCartItem(c *gin.Context) {
	sc := s.open(c, "/cart")
	if err := sc.cart.RemoveItem(c.Request.Context(), c.Param("productId"), sizeParam(c)); err != nil {
		sc.fail(c, err, err.Error())
		return
	}
	sc.respond(c, http.StatusOK, cartView(sc.cart))
}

// 🔴 DELETE /cart
func (s *Storefront) ClearCart(c *gin.Context) {
	sc := s.open(c, "/cart")
	sc.cart.Clear(c.Request.Context())
	sc.respond(c, http.StatusOK, cartView(sc.cart))
}

// 🟢 POST /cart/coupon
func (s *Storefront) ApplyCoupon(c *gin.Context) {
	var input struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	sc := s.open(c, "/cart")
	if _, err := sc.cart.ValidateAndApplyCoupon(c.Request.Context(), input.Code); err != nil {
		sc.fail(c, err, userMessage(err, "Failed to apply coupon"))
		return
	}
	sc.respond(c, http.StatusOK, cartView(sc.cart))
}

// 🔴 DELETE /cart/coupon
func (s *Storefront) RemoveCoupon(c *gin.Context) {
	sc := s.open(c, "/cart")
	sc.cart.RemoveCoupon(c.Request.Context())
	sc.respond(c, http.StatusOK, cartView(sc.cart))
}

// Package handlers exposes the checkout pipeline over HTTP. Handlers stay
// thin: bind, call the service, map pipeline errors to status codes.
package handlers

import (
	"errors"
	"net/http"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/service"

	"github.com/gin-gonic/gin"
)

var (
	svc   *checkout.Service
	carts service.RedisCarts
)

// Init hands the wired checkout service to the package. Called once from main.
func Init(s *checkout.Service) {
	svc = s
}

// respondCheckoutError translates pipeline sentinel errors into HTTP codes.
func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, checkout.ErrAddressIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address missing or incomplete"})
	case errors.Is(err, checkout.ErrNothingPurchasable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No purchasable item left in cart"})
	case errors.Is(err, checkout.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, checkout.ErrNotAuthorized):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not authorized"})
	case errors.Is(err, checkout.ErrStaleAttempt):
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout changed, refresh and try again"})
	case errors.Is(err, checkout.ErrItemUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "An item is no longer available"})
	case errors.Is(err, checkout.ErrProcessor):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment processor unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

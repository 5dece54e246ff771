package handlers

import (
	"errors"
	"net/http"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

type cartView struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Status    string `json:"status"`
	ImageURL  string `json:"image_url,omitempty"`
}

// GET /api/cart
// Returns the cart enriched with live listing data so the client can show
// current prices and flag lines that went unavailable since they were added.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	lines, err := carts.Lines(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read cart"})
		return
	}

	view := []cartView{}
	var total int64
	for _, line := range lines {
		entry := cartView{ProductID: line.ProductID, Quantity: line.Quantity}

		snap, err := svc.Catalog.Snapshot(c.Request.Context(), line.ProductID)
		switch {
		case errors.Is(err, checkout.ErrProductNotFound):
			entry.Status = "removed"
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read catalog"})
			return
		default:
			entry.Title = snap.Title
			entry.Price = snap.Price
			entry.Status = snap.Status
			entry.ImageURL = snap.ImageURL
			if snap.Purchasable() {
				total += snap.Price * int64(line.Quantity)
			}
		}
		view = append(view, entry)
	}

	c.JSON(http.StatusOK, gin.H{"items": view, "total": total, "count": len(view)})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	// The listing must exist at add time. Availability is only checked at
	// checkout, so a reserved item can still sit in a cart.
	_, err := svc.Catalog.Snapshot(c.Request.Context(), input.ProductID)
	if errors.Is(err, checkout.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read catalog"})
		return
	}

	lines, err := carts.Lines(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read cart"})
		return
	}

	lines = models.MergeLine(lines, models.CartLine{ProductID: input.ProductID, Quantity: input.Quantity})
	if err := carts.Save(c.Request.Context(), userID, lines); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": lines, "count": len(lines)})
}

// DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	if err := carts.RemoveLines(c.Request.Context(), userID, []string{productID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update cart"})
		return
	}

	lines, err := carts.Lines(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": lines, "count": len(lines)})
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

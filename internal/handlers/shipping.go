package handlers

import (
	"net/http"

	"tsurigu_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GET /api/shipping/fee?region=Tokyo
// Quotes the flat shipping fee for a region. Unknown regions fall back to the
// default fee, an empty region quotes zero (seller-paid shipping).
func QuoteShippingFee(c *gin.Context) {
	region := c.Query("region")

	c.JSON(http.StatusOK, models.ShippingQuote{
		Region:    region,
		BuyerPays: region != "",
		Fee:       svc.Fees.Quote(region, true),
	})
}

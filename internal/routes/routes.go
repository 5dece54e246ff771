package routes

import (
	"tsurigu_back_end/internal/handlers"
	"tsurigu_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Stripe calls this one; auth is the signature header.
	api.POST("/stripe/webhook", handlers.StripeWebhook)

	api.GET("/shipping/fee", handlers.QuoteShippingFee)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired())

	cart := authed.Group("/cart")
	{
		cart.GET("", handlers.GetCart)
		cart.POST("/add", middleware.CartRateLimit(), handlers.AddToCart)
		cart.DELETE("/:productId", handlers.RemoveFromCart)
		cart.DELETE("", handlers.ClearCart)
	}

	addresses := authed.Group("/addresses")
	{
		addresses.GET("", handlers.GetAddresses)
		addresses.POST("", handlers.CreateAddress)
		addresses.PUT("/:id", handlers.UpdateAddress)
		addresses.DELETE("/:id", handlers.DeleteAddress)
	}

	authed.POST("/payment-intent", middleware.CheckoutRateLimit(), handlers.CreatePaymentIntent)

	orders := authed.Group("/orders")
	{
		orders.POST("", handlers.PlaceOrder)
		orders.GET("/mine", handlers.GetMyOrders)
		orders.GET("/sales", handlers.GetMySales)
		orders.GET("/:id", handlers.GetOrder)
		orders.PATCH("/:id/status", handlers.UpdateOrderStatus)
		orders.GET("/:id/receipt", handlers.GetOrderReceipt)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", handlers.GetNotifications)
		notifications.PATCH("/:id/read", handlers.MarkNotificationRead)
	}

	ws := authed.Group("/ws")
	{
		ws.GET("/cart", handlers.CartWebSocket)
		ws.GET("/notifications", handlers.NotificationsWebSocket)
	}
}

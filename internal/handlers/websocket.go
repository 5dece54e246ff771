package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the marketplace frontend origin once it is fixed
		return true
	},
}

// GET /api/ws/cart
// Live cart sync: the store publishes on cart:{userID} after every write and
// each connected client re-reads the cart.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()
	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{"type": "connected"})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			lines, err := carts.Lines(ctx, userID)
			if err != nil {
				log.Printf("❌ Cart read for websocket failed: %v", err)
				continue
			}
			if lines == nil {
				lines = []models.CartLine{}
			}
			if err := conn.WriteJSON(gin.H{"type": "cart_updated", "items": lines, "count": len(lines)}); err != nil {
				return
			}
		case <-time.After(30 * time.Second):
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GET /api/ws/notifications
// Pushes seller feed entries as they are written, over notify:{userID}.
func NotificationsWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()
	pubsub := database.Redis.Subscribe(ctx, "notify:"+userID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{"type": "connected"})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var notification models.SellerNotification
			if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
				continue
			}
			if err := conn.WriteJSON(gin.H{"type": "notification", "notification": notification}); err != nil {
				return
			}
		case <-time.After(30 * time.Second):
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

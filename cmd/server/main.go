package main

import (
	"context"
	"log"
	"os"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/config"
	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/handlers"
	"tsurigu_back_end/internal/routes"
	"tsurigu_back_end/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Fatal("❌ Cannot initialize Stripe: STRIPE_SECRET_KEY missing")
	}
	log.Println("✅ Stripe initialized")

	database.ConnectDatabases()
	ensureIndexes()
	warmupRedisCache()

	svc := checkout.New(checkout.Service{
		Catalog:   service.ScyllaCatalog{},
		Payments:  service.StripePayments{},
		Carts:     service.RedisCarts{},
		Attempts:  service.RedisAttempts{},
		Orders:    service.MongoOrders{},
		Addresses: service.MongoAddresses{},
		Notifier:  service.FanoutNotifier{},
		Fees:      config.LoadFeeTable(),
	})
	handlers.Init(svc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Tsurigu Market checkout service listening on port", port)
	r.Run(":" + port)
}

func frontendOrigin() string {
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		return origin
	}
	return "http://localhost:3000"
}

func ensureIndexes() {
	if err := database.EnsureOrderIndexes(database.MongoOrdersDB); err != nil {
		log.Fatal("❌ Could not create order indexes:", err)
	}
	if err := database.EnsureUserIndexes(database.MongoUsersDB); err != nil {
		log.Fatal("❌ Could not create user indexes:", err)
	}
}

// warmupRedisCache pings Redis once so the first request does not pay the
// connection cost.
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}

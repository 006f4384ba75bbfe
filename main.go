package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/alerts"
	"github.com/orientalessence/essence-api/cart"
	"github.com/orientalessence/essence-api/checkout"
	"github.com/orientalessence/essence-api/controllers"
	"github.com/orientalessence/essence-api/initializers"
	"github.com/orientalessence/essence-api/mailer"
	"github.com/orientalessence/essence-api/models"
	"github.com/orientalessence/essence-api/repository"
	"github.com/orientalessence/essence-api/routes"
	"github.com/orientalessence/essence-api/seed"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func allowedOrigins() []string {
	origins := []string{"http://localhost:5173"}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		origins = append(origins, strings.Split(frontend, ",")...)
	}
	return origins
}

func main() {
	if err := seed.Reviews(initializers.DB); err != nil {
		log.Println("Review seeding failed:", err)
	}

	cartStore := cart.NewStore(cart.NewGormStorage(initializers.DB))
	cartStore.Subscribe(func(sessionID string, c models.Cart) {
		log.Printf("Cart %s updated: %d items, total %.2f", sessionID, len(c.Items), c.Total)
	})

	orderStore := repository.NewStore(initializers.DB)
	dispatcher := mailer.NewSMTPDispatcher()
	alertWebhook := alerts.NewWebhook(os.Getenv("ALERT_WEBHOOK_URL"))
	flow := checkout.NewFlow(cartStore, orderStore, dispatcher, alertWebhook, os.Getenv("ADMIN_EMAIL"))

	server := gin.Default()
	server.HandleMethodNotAllowed = true
	server.NoMethod(controllers.MethodNotAllowed)
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.CartRoutes(server, cartStore)
	routes.CheckoutRoutes(server, flow)
	routes.OrderRoutes(server, orderStore)
	routes.EmailRoutes(server, dispatcher)

	server.Run()
}

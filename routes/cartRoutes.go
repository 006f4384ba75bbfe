package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/cart"
	"github.com/orientalessence/essence-api/controllers"
)

func CartRoutes(server *gin.Engine, store *cart.Store) {
	server.POST("/cart", controllers.CreateCartSession())
	server.GET("/cart/:sessionId", controllers.GetCart(store))
	server.POST("/cart/:sessionId/items", controllers.AddCartItem(store))
	server.PATCH("/cart/:sessionId/items/:productId", controllers.SetCartItemQuantity(store))
	server.DELETE("/cart/:sessionId/items/:productId", controllers.RemoveCartItem(store))
	server.DELETE("/cart/:sessionId", controllers.ClearCart(store))
}

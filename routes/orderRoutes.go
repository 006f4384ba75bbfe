package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/controllers"
	"github.com/orientalessence/essence-api/middlewares"
	"github.com/orientalessence/essence-api/repository"
)

func OrderRoutes(server *gin.Engine, store *repository.Store) {
	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/order", controllers.GetOrders(store))
		admin.GET("/order/:orderId", controllers.GetOrderById(store))
		admin.PATCH("/order/:orderId", controllers.UpdateOrderStatus(store))
		admin.DELETE("/order/:orderId", controllers.DeleteOrder(store))
		admin.GET("/order-stats/undelivered", controllers.GetUndeliveredOrders(store))
	}
}

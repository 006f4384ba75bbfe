package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/checkout"
	"github.com/orientalessence/essence-api/controllers"
)

func CheckoutRoutes(server *gin.Engine, flow *checkout.Flow) {
	server.POST("/checkout/:sessionId", controllers.SubmitCheckout(flow))
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/controllers"
	"github.com/orientalessence/essence-api/mailer"
)

func EmailRoutes(server *gin.Engine, dispatcher mailer.Dispatcher) {
	server.POST("/api/send-email", controllers.SendOrderEmail(dispatcher))
	server.POST("/api/contact", controllers.SendContactMessage(dispatcher))
}

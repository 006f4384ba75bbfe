package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/controllers"
)

func AuthRoutes(server *gin.Engine) {
	server.POST("/admin/login", controllers.AdminLogin)
}

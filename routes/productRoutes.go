package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/controllers"
	"github.com/orientalessence/essence-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)
	server.GET("/product/:id/reviews", controllers.GetReviews)
	server.GET("/product/:id/rating", controllers.GetReviewStats)
	server.POST("/product/:id/reviews", controllers.CreateReview)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/product", controllers.CreateProduct)
		admin.PUT("/product/:id", controllers.UpdateProduct)
		admin.DELETE("/product/:id", controllers.DeleteProduct)
		admin.POST("/product-images", controllers.UploadProductImages)
	}
}

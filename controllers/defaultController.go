package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Oriental Essence API.

The following are the endpoints for this API:

CART
- POST "/cart" - Create a cart session
- GET "/cart/:sessionId" - Get the cart for a session
- POST "/cart/:sessionId/items" - Add a product to the cart
- PATCH "/cart/:sessionId/items/:productId" - Set a line item quantity
- DELETE "/cart/:sessionId/items/:productId" - Remove a line item
- DELETE "/cart/:sessionId" - Clear the cart

CHECKOUT
- POST "/checkout/:sessionId" - Place the order and send confirmations

PRODUCT
- GET "/product" - Get all products
- GET "/product/:id" - Get product by ID
- GET "/product/:id/reviews" - Get product reviews
- GET "/product/:id/rating" - Get review count and average
- POST "/product/:id/reviews" - Create a review
- POST "/product" - Create new product (admin)
- PUT "/product/:id" - Update product (admin)
- DELETE "/product/:id" - Delete product (admin)
- POST "/product-images" - Upload product images (admin)

ORDER (admin)
- GET "/order" - Retrieve all orders
- GET "/order/:orderId" - Get order by ID
- PATCH "/order/:orderId" - Update order status
- DELETE "/order/:orderId" - Delete order by ID
- GET "/order-stats/undelivered" - Count undelivered orders

MAIL
- POST "/api/send-email" - Send order confirmation emails
- POST "/api/contact" - Send a contact message

AUTH
- POST "/admin/login" - Admin login`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/mailer"
	"github.com/orientalessence/essence-api/models"
)

// OrderEmailRequest is the body of POST /api/send-email: an already
// assembled order for which the caller wants the two confirmation mails.
type OrderEmailRequest struct {
	OrderNumber string                `json:"orderNumber" binding:"required"`
	Name        string                `json:"name" binding:"required"`
	Email       string                `json:"email" binding:"required,email"`
	Phone       string                `json:"phone" binding:"required"`
	Address     string                `json:"address" binding:"required"`
	Items       []models.CartLineItem `json:"items" binding:"required,min=1"`
	// gin's required binding treats a zero float as missing, and a zero
	// total is legitimate, so only negative totals are rejected
	Total float64 `json:"total" binding:"gte=0"`
	Notes string  `json:"notes"`
}

func (r OrderEmailRequest) toDraft() models.OrderDraft {
	subtotal := 0.0
	for _, item := range r.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	shipping := r.Total - subtotal
	if shipping < 0 {
		shipping = 0
	}

	return models.OrderDraft{
		OrderNumber: r.OrderNumber,
		Customer: models.CustomerInfo{
			Name:    r.Name,
			Email:   r.Email,
			Phone:   r.Phone,
			Address: r.Address,
			Notes:   r.Notes,
		},
		Items:        r.Items,
		Subtotal:     subtotal,
		ShippingCost: shipping,
		GrandTotal:   r.Total,
	}
}

// SendOrderEmail renders and sends the customer receipt and the merchant
// alert for an order supplied in the request body. Both sends must succeed
// for a 200; any failure is a 500 with the error surfaced.
func SendOrderEmail(dispatcher mailer.Dispatcher) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var request OrderEmailRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			log.Println("Bind error:", err)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		draft := request.toDraft()

		receipt, err := mailer.BuildCustomerReceipt(draft)
		if err == nil {
			err = dispatcher.Send(receipt)
		}
		if err != nil {
			log.Println("Failed to send customer receipt:", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send order emails"})
			return
		}

		alert, err := mailer.BuildMerchantAlert(draft, os.Getenv("ADMIN_EMAIL"))
		if err == nil {
			err = dispatcher.Send(alert)
		}
		if err != nil {
			log.Println("Failed to send merchant alert:", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send order emails"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// SendContactMessage forwards a contact-form submission to the merchant.
func SendContactMessage(dispatcher mailer.Dispatcher) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var request struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email" binding:"required,email"`
			Message string `json:"message" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&request); err != nil {
			log.Println("Bind error:", err)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		message, err := mailer.BuildContactMessage(request.Name, request.Email, request.Message, os.Getenv("ADMIN_EMAIL"))
		if err == nil {
			err = dispatcher.Send(message)
		}
		if err != nil {
			log.Println("Failed to send contact message:", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// MethodNotAllowed is installed as gin's NoMethod handler so POST-only
// endpoints answer non-POST requests with 405.
func MethodNotAllowed(ctx *gin.Context) {
	ctx.JSON(http.StatusMethodNotAllowed, gin.H{
		"error": fmt.Sprintf("Method %s not allowed", ctx.Request.Method),
	})
}

package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/checkout"
	"github.com/orientalessence/essence-api/models"
)

// SubmitCheckout turns the session's cart into a persisted order and
// triggers the confirmation emails. Validation problems come back as 400
// with the cart untouched; a persistence failure is a retryable 502.
// Notification failures do not fail the request: the order row already
// exists and is the source of truth.
func SubmitCheckout(flow *checkout.Flow) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var customer models.CustomerInfo
		if err := ctx.ShouldBindJSON(&customer); err != nil {
			log.Println("Bind error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid checkout data")
			return
		}

		result, err := flow.Submit(ctx.Param("sessionId"), customer)
		if err != nil {
			var validationErr *checkout.ValidationError
			var persistenceErr *checkout.PersistenceError
			switch {
			case errors.As(err, &validationErr):
				sendErrorResponse(ctx, http.StatusBadRequest, validationErr.Reason)
			case errors.As(err, &persistenceErr):
				log.Println("Checkout persistence failure:", persistenceErr)
				sendErrorResponse(ctx, http.StatusBadGateway, "Failed to place order. Please try again.")
			default:
				log.Println("Checkout error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Checkout failed")
			}
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"message":     "Order placed successfully.",
			"orderId":     result.OrderID,
			"orderNumber": result.OrderNumber,
			"total":       result.GrandTotal,
		})
	}
}

package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orientalessence/essence-api/cart"
	"github.com/orientalessence/essence-api/models"
)

// CreateCartSession issues a fresh cart session id. The client keeps it for
// the lifetime of the browsing session.
func CreateCartSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sendJSONResponse(ctx, http.StatusCreated, gin.H{"sessionId": uuid.NewString()})
	}
}

func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID := ctx.Param("sessionId")
		sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": store.Get(sessionID)})
	}
}

func AddCartItem(store *cart.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var item models.CartLineItem
		if err := ctx.ShouldBindJSON(&item); err != nil {
			log.Println("Bind error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
			return
		}

		updated := store.Add(ctx.Param("sessionId"), item)
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": item.Name + " added to cart",
			"cart":    updated,
		})
	}
}

func SetCartItemQuantity(store *cart.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			log.Println("Bind error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
			return
		}

		updated := store.SetQuantity(ctx.Param("sessionId"), ctx.Param("productId"), body.Quantity)
		sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": updated})
	}
}

func RemoveCartItem(store *cart.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		updated := store.Remove(ctx.Param("sessionId"), ctx.Param("productId"))
		sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": updated})
	}
}

func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		store.Clear(ctx.Param("sessionId"))
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared."})
	}
}

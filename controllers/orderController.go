package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/repository"
	"gorm.io/gorm"
)

// GetOrders lists orders for the admin dashboard with pagination and
// search by order number.
func GetOrders(store *repository.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
		sortOrder := ctx.DefaultQuery("sort", "desc")
		search := ctx.Query("search")

		orders, count, err := store.ListOrders(page, limit, search, sortOrder)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
			return
		}

		previousPage := page - 1
		nextPage := page + 1
		totalPages := math.Ceil(float64(count) / float64(limit))

		ctx.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"metadata": gin.H{
				"total":        count,
				"currentPage":  page,
				"limit":        limit,
				"hasPrevPage":  previousPage > 0,
				"hasNextPage":  int(totalPages) > page,
				"previousPage": previousPage,
				"nextPage":     nextPage,
			},
		})
	}
}

func GetOrderById(store *repository.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderId, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
			return
		}

		order, err := store.GetOrder(uint(orderId))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			} else {
				log.Println(err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
			}
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
	}
}

func UpdateOrderStatus(store *repository.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var orderStatusData struct {
			Status string `json:"status" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
			return
		}

		orderId, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
			return
		}

		if err := store.UpdateOrderStatus(uint(orderId), orderStatusData.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			} else {
				log.Println(err)
				sendErrorResponse(ctx, http.StatusBadRequest, "Failed to update order status")
			}
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"message": "Order status updated successfully.",
		})
	}
}

func DeleteOrder(store *repository.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderId, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
			return
		}

		if err := store.DeleteOrder(uint(orderId)); err != nil {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to delete order.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
	}
}

func GetUndeliveredOrders(store *repository.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		count, err := store.CountUndelivered()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count undelivered orders"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
	}
}

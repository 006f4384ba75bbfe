package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orientalessence/essence-api/initializers"
	"github.com/orientalessence/essence-api/models"
	"gorm.io/gorm"
)

func GetReviews(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var reviews []models.Review
	result := initializers.DB.
		Where("product_id = ?", productId).
		Order("created_at desc").
		Find(&reviews)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"reviews": reviews})
}

func GetReviewStats(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var stats struct {
		Count   int64
		Average float64
	}
	result := initializers.DB.Model(&models.Review{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as average").
		Where("product_id = ?", productId).
		Scan(&stats)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute rating")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, models.ReviewStats{
		Count:   stats.Count,
		Average: roundRating(stats.Average),
	})
}

// roundRating rounds an average rating to one decimal place for display.
func roundRating(average float64) float64 {
	return math.Round(average*10) / 10
}

func CreateReview(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to validate product")
		}
		return
	}

	var review models.Review
	if err := ctx.ShouldBindJSON(&review); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	review.ProductID = productId
	review.Seeded = false

	if err := initializers.DB.Create(&review).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create review")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"review": review})
}

package api

import (
	"errors"
	"net/http"

	"elearn_backend/internal/service"
	"elearn_backend/internal/storage"
	"elearn_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// PurchaseRequest carries the course fields as the client captured them
// from the catalog; the core trusts them as given
type PurchaseRequest struct {
	CourseID    uint    `json:"courseId" binding:"required"`
	CourseTitle string  `json:"courseTitle" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// PurchaseHandler buys a course for the authenticated user
func PurchaseHandler(purchases *service.PurchaseService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}
		var req PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		order, err := purchases.Purchase(ctx, userID.(uint), req.CourseID, req.CourseTitle, req.Price)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrInsufficientFunds):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient balance"})
			case errors.Is(err, storage.ErrAccountNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Account not found"})
			case errors.Is(err, service.ErrInvalidPrice):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			}
			return
		}
		// The balance and the order list both changed
		_ = utils.DeleteCache(ctx, rdb, accountCacheKey(userID.(uint)))
		_ = utils.DeleteCache(ctx, rdb, ordersCacheKey(userID.(uint)))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Purchase successful!",
			"order":   order,
		})
	}
}

package api

import (
	"net/http"
	"strconv"

	"elearn_backend/internal/domain"
	"elearn_backend/internal/service"
	"elearn_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// accountCacheKey is the per-user cache key for account reads
func accountCacheKey(userID uint) string {
	return "account:user:" + strconv.Itoa(int(userID))
}

// ordersCacheKey is the per-user cache key for order history reads
func ordersCacheKey(userID uint) string {
	return "orders:user:" + strconv.Itoa(int(userID))
}

// GetAccountHandler returns the caller's account, provisioning it on first
// access. Reads go through redis with a short TTL; purchases invalidate.
func GetAccountHandler(accounts *service.AccountService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := accountCacheKey(userID.(uint))
		var account domain.Account
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &account); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "account": account, "cached": true})
			return
		}
		got, err := accounts.GetOrCreate(ctx, userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, got, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"success": true, "account": got, "cached": false})
	}
}

// GetOrdersHandler returns the caller's purchase history, newest first
func GetOrdersHandler(accounts *service.AccountService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := ordersCacheKey(userID.(uint))
		var orders []domain.Order
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &orders); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "cached": true})
			return
		}
		orders, err := accounts.Orders(ctx, userID.(uint))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if orders == nil {
			orders = []domain.Order{} // Always answer with an array
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, orders, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "cached": false})
	}
}

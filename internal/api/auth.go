package api

import (
	"errors"
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"elearn_backend/internal/service"
	"elearn_backend/internal/storage"
	"elearn_backend/internal/utils"

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterRequest carries the registration form. Field casing matches what
// the mobile client sends.
type RegisterRequest struct {
	Name     string `json:"Name" binding:"required"`
	Phone    string `json:"Phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest carries the login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a user account from the registration form
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		// Hash before anything touches storage; the core only sees hashes
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if _, err := auth.Register(c.Request.Context(), req.Name, req.Phone, req.Email, string(hash)); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registration successful!"})
	}
}

// LoginHandler authenticates a user and issues the session token
func LoginHandler(auth *service.AuthService, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		user, err := auth.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			// Unknown email and wrong password answer identically
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect email or password"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Name, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful!",
			"token":   token,
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

// CheckAuthHandler reports whether the caller holds a valid session token
func CheckAuthHandler(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
			return
		}
		claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), jwtSecret)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"isLoggedIn": true,
			"user": gin.H{
				"id":   claims.UserID,
				"name": claims.UserName,
			},
		})
	}
}

// LogoutHandler ends the session. Tokens are stateless, so the client just
// discards its copy; this endpoint exists for the app's logout flow.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	}
}

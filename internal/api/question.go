package api

import (
	"errors"
	"net/http"
	"strconv"

	"elearn_backend/internal/domain"
	"elearn_backend/internal/service"
	"elearn_backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// QuestionRequest carries a new forum question. ImagePath is the path the
// upload layer produced, recorded verbatim; may be empty.
type QuestionRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	ImagePath string `json:"image_path"`
}

// ReplyRequest carries a reply body
type ReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateQuestionHandler submits a new question
func CreateQuestionHandler(questions *service.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}
		var req QuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		question, err := questions.Ask(c.Request.Context(), userID.(uint), req.Title, req.Content, req.ImagePath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Question submitted!", "question": question})
	}
}

// ListQuestionsHandler returns questions newest first. ?all=true lists the
// whole forum, ?user_id= narrows to one user, the default is the caller's.
func ListQuestionsHandler(questions *service.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}
		filter := storage.QuestionFilter{UserID: userID.(uint)}
		if c.Query("all") == "true" {
			filter.UserID = 0
		} else if v := c.Query("user_id"); v != "" {
			if id, err := strconv.Atoi(v); err == nil && id > 0 {
				filter.UserID = uint(id)
			}
		}
		list, err := questions.List(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if list == nil {
			list = []domain.Question{} // Always answer with an array
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "questions": list})
	}
}

// MyQuestionsHandler returns only the caller's questions
func MyQuestionsHandler(questions *service.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}
		list, err := questions.List(c.Request.Context(), storage.QuestionFilter{UserID: userID.(uint)})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		if list == nil {
			list = []domain.Question{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "questions": list})
	}
}

// QuestionDetailHandler returns one question with its replies
func QuestionDetailHandler(questions *service.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid question id"})
			return
		}
		question, err := questions.Get(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "question": question})
	}
}

// CreateReplyHandler answers a question
func CreateReplyHandler(questions *service.QuestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not logged in"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid question id"})
			return
		}
		var req ReplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		reply, err := questions.Reply(c.Request.Context(), uint(id), userID.(uint), req.Content)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reply posted!", "reply": reply})
	}
}

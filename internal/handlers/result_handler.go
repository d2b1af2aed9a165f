package handlers

import (
	"log"
	"net/http"

	"resumentor/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.QuizService
}

func NewResultHandler(s *service.QuizService) *ResultHandler {
	return &ResultHandler{Service: s}
}

// GetResultsByUser lists every graded quiz for a user.
func (h *ResultHandler) GetResultsByUser(c *gin.Context) {
	userID := c.Param("userId")
	results, err := h.Service.ResultsByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("listing results for user %s failed: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

// GetResultsBySession lists the results recorded for one session.
// Sessions expire but their results do not, so this stays answerable.
func (h *ResultHandler) GetResultsBySession(c *gin.Context) {
	sessionID := c.Param("sessionId")
	results, err := h.Service.ResultsBySession(c.Request.Context(), sessionID)
	if err != nil {
		log.Printf("listing results for session %s failed: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No results for this session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

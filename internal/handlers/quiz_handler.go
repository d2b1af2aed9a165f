package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"resumentor/internal/models"
	"resumentor/internal/oracle"
	"resumentor/internal/repository"
	"resumentor/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

type startQuizRequest struct {
	ResumeText string `json:"resumeText"`
	Difficulty string `json:"difficulty"`
	UserID     string `json:"userId"`
}

type submitQuizRequest struct {
	SessionID        string    `json:"sessionId"`
	UserID           string    `json:"userId"`
	SubmittedAnswers *[]string `json:"submittedAnswers"`
}

// StartQuiz validates the resume, generates a quiz and opens a session.
// The response carries the client view of each question: the answer key
// stays on the server.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req startQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}
	if req.ResumeText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resume text is required"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulty(req.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": oracle.ErrInvalidDifficulty.Error()})
		return
	}

	session, err := h.Service.StartQuiz(c.Request.Context(), req.ResumeText, req.Difficulty, req.UserID)
	if err != nil {
		var notResume *service.NotAResumeError
		if errors.As(err, &notResume) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": notResume.Error()})
			return
		}
		// Oracle detail is logged, never returned to the client.
		log.Printf("start quiz failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate quiz"})
		return
	}

	quiz := make([]models.ClientQuestion, 0, len(session.Questions))
	for i := range session.Questions {
		quiz = append(quiz, session.Questions[i].ClientView())
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Quiz generated successfully",
		"sessionId": session.ID,
		"quiz":      quiz,
	})
}

// SubmitQuiz reconciles the submitted answer text against the stored
// session, grades it and records the result.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Session ID is required"})
		return
	}
	if req.SubmittedAnswers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Submitted answers must be an array"})
		return
	}

	result, err := h.Service.SubmitQuiz(c.Request.Context(), req.SessionID, req.UserID, *req.SubmittedAnswers)
	if err != nil {
		var countErr *service.AnswerCountError
		switch {
		case errors.As(err, &countErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": countErr.Error()})
		case errors.Is(err, repository.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Quiz session not found"})
		default:
			log.Printf("submit quiz failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quiz submitted successfully",
		"result": gin.H{
			"score":           result.Score,
			"totalQuestions":  result.TotalQuestions,
			"percentage":      service.Percentage(result.Score, result.TotalQuestions),
			"detailedResults": result.DetailedResults,
		},
	})
}

// Health reports liveness.
func (h *QuizHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Resumentor API is running",
		"timestamp": time.Now().UTC(),
	})
}

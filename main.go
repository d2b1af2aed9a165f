package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"resumentor/configs"
	"resumentor/internal/db"
	"resumentor/internal/event"
	"resumentor/internal/handlers"
	"resumentor/internal/middleware"
	"resumentor/internal/oracle"
	"resumentor/internal/repository"
	"resumentor/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configs.LoadConfig()
	gin.SetMode(configs.AppConfig.GinMode)

	db.InitMongo(configs.AppConfig.MongoURI)
	database := db.Client.Database(configs.AppConfig.MongoDatabase)
	if err := db.EnsureIndexes(database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// RabbitMQ event publisher, optional
	var publisher *event.Publisher
	if configs.AppConfig.RabbitMQURI != "" && configs.AppConfig.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewPublisher(configs.AppConfig.RabbitMQURI, configs.AppConfig.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, quiz events will not be published")
	}

	// Redis-backed rate limiter, optional
	var limiter *middleware.RateLimiter
	if configs.AppConfig.RedisAddr != "" {
		var err error
		limiter, err = middleware.NewRateLimiter(configs.AppConfig.RedisAddr, configs.AppConfig.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer limiter.Close()
	} else {
		log.Println("Redis not configured, rate limiting disabled")
	}

	// Oracle clients: validation uses default sampling, generation uses
	// the tuned sampling config.
	gemini := oracle.NewGeminiClient(
		configs.AppConfig.GeminiBaseURL,
		configs.AppConfig.GeminiAPIKey,
		configs.AppConfig.GeminiModel,
	)
	validator := oracle.NewResumeValidator(gemini)
	generator := oracle.NewQuestionGenerator(gemini.WithGenerationSampling())

	sessionRepo := repository.NewSessionRepository(database)
	resultRepo := repository.NewResultRepository(database)
	quizService := service.NewQuizService(validator, generator, sessionRepo, resultRepo)
	quizHandler := handlers.NewQuizHandler(quizService)
	resultHandler := handlers.NewResultHandler(quizService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(configs.AppConfig.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "Welcome to Resumentor")
	})
	r.GET("/api/health", quizHandler.Health)

	quiz := r.Group("/api/quiz")
	{
		quiz.POST("/start", limiter.Limit("start", 10, time.Hour), func(c *gin.Context) {
			quizHandler.StartQuiz(c)
			if c.Writer.Status() == http.StatusOK {
				publisher.Publish(event.QuizStarted, gin.H{"user_id": c.GetHeader("X-User-ID")})
			} else {
				publisher.Publish(event.QuizStartFailed, gin.H{"status": c.Writer.Status()})
			}
		})

		quiz.POST("/submit", limiter.Limit("submit", 20, 15*time.Minute), func(c *gin.Context) {
			quizHandler.SubmitQuiz(c)
			if c.Writer.Status() == http.StatusOK {
				publisher.Publish(event.QuizSubmitted, gin.H{"user_id": c.GetHeader("X-User-ID")})
			} else {
				publisher.Publish(event.QuizSubmitFailed, gin.H{"status": c.Writer.Status()})
			}
		})

		quiz.GET("/user/:userId/results", resultHandler.GetResultsByUser)
		quiz.GET("/session/:sessionId/results", resultHandler.GetResultsBySession)
	}

	log.Printf("Starting Resumentor on port %s", configs.AppConfig.Port)
	if err := r.Run(":" + configs.AppConfig.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/srichai/gradebench/internal/config"
	"github.com/srichai/gradebench/internal/handler"
	"github.com/srichai/gradebench/internal/middleware"
	"github.com/srichai/gradebench/internal/response"
	"github.com/srichai/gradebench/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Exam     *handler.ExamHandler
	Question *handler.QuestionHandler
	Grading  *handler.GradingHandler
	Monitor  *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireTeacherJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Workbench Group (Teacher JWT) ──────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireTeacherJWT(authService))
	{
		// Exam lifecycle.
		api.GET("/exams", handlers.Exam.ListExams)
		api.POST("/exams", handlers.Exam.CreateExam)
		api.GET("/exams/:exam_id", handlers.Exam.GetExam)
		api.DELETE("/exams/:exam_id", handlers.Exam.DeleteExam)
		api.PATCH("/exams/:exam_id/status", handlers.Exam.UpdateExamStatus)
		api.POST("/exams/:exam_id/recompute-stats", handlers.Exam.RecomputeStats)

		// Question authoring.
		api.POST("/exams/:exam_id/questions", handlers.Question.CreateQuestion)
		api.DELETE("/exams/:exam_id/questions/:question_id", handlers.Question.DeleteQuestion)
		api.GET("/questions/:question_id", handlers.Question.GetQuestion)
		api.GET("/questions/:question_id/answers", handlers.Question.ListAnswers)
		api.POST("/questions/:question_id/answers", handlers.Question.CreateAnswer)

		// Direct scoring.
		api.POST("/answers/:answer_id/score", handlers.Grading.CommitScore)
		api.POST("/answers/:answer_id/suggest", handlers.Grading.SuggestScore)
		api.POST("/questions/:question_id/suggest-batch", handlers.Grading.BatchSuggest)

		// Grading sessions.
		api.POST("/grading-sessions", handlers.Grading.OpenSession)
		api.GET("/grading-sessions/:session_id", handlers.Grading.GetSession)
		api.DELETE("/grading-sessions/:session_id", handlers.Grading.CloseSession)
		api.PUT("/grading-sessions/:session_id/drafts/:answer_id", handlers.Grading.SetDraft)
		api.POST("/grading-sessions/:session_id/focus", handlers.Grading.Focus)
		api.POST("/grading-sessions/:session_id/answers/:answer_id/suggest", handlers.Grading.SessionSuggest)
		api.POST("/grading-sessions/:session_id/answers/:answer_id/save", handlers.Grading.Save)
		api.POST("/grading-sessions/:session_id/save-all", handlers.Grading.SaveAll)
	}

	// ─── 3. WebSocket Group (Teacher WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireTeacherWSAuth(authService))
	{
		ws.GET("/exams/:exam_id/stats", handlers.Monitor.StatsStream)
	}

	return router
}

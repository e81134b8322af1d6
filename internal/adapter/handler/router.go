package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/internal/infrastructure/http/middleware"
	"github.com/prevue-ai/interview-server/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	validator        middleware.TokenValidator
	authHandler      *Auth
	interviewHandler *Interview
	scheduleHandler  *Schedule
	speechHandler    *Speech
	reportHandler    *Report
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	validator middleware.TokenValidator,
	authHandler *Auth,
	interviewHandler *Interview,
	scheduleHandler *Schedule,
	speechHandler *Speech,
	reportHandler *Report,
) *Router {
	return &Router{
		cfg:              cfg,
		validator:        validator,
		authHandler:      authHandler,
		interviewHandler: interviewHandler,
		scheduleHandler:  scheduleHandler,
		speechHandler:    speechHandler,
		reportHandler:    reportHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	requireAuth := middleware.EchoAuth(rt.validator)
	optionalAuth := middleware.EchoOptionalAuth(rt.validator)
	requireHR := middleware.RequireRole(entities.RoleHR, entities.RoleAdmin)

	rt.setupAuthRoutes(api, requireAuth, optionalAuth)
	rt.setupInterviewRoutes(api, requireAuth, requireHR)
	rt.setupMediaRoutes(api, requireAuth)
}

func (rt *Router) setupAuthRoutes(g *echo.Group, requireAuth, optionalAuth echo.MiddlewareFunc) {
	g.POST("/signup", rt.authHandler.SignUp)
	g.POST("/signin", rt.authHandler.SignIn)
	g.GET("/logout", rt.authHandler.Logout)
	g.POST("/forgot-password", rt.authHandler.ForgotPassword)
	g.POST("/reset-password/:token", rt.authHandler.ResetPassword)
	g.POST("/guest-access/:token", rt.authHandler.GuestAccess, optionalAuth)

	g.GET("/profile", rt.authHandler.Profile, requireAuth)
	g.PUT("/profile", rt.authHandler.UpdateProfile, requireAuth)
	g.POST("/upload-profile-image", rt.authHandler.UploadProfileImage, requireAuth)
	g.DELETE("/delete-profile-image", rt.authHandler.DeleteProfileImage, requireAuth)
}

func (rt *Router) setupInterviewRoutes(g *echo.Group, requireAuth, requireHR echo.MiddlewareFunc) {
	questions := g.Group("/questions", requireAuth)

	questions.POST("/create-interview", rt.interviewHandler.CreateInterview)
	questions.POST("/next-question", rt.interviewHandler.NextQuestion)
	questions.POST("/evaluate", rt.interviewHandler.Evaluate)
	questions.POST("/finalize-interview", rt.interviewHandler.FinalizeInterview)
	questions.POST("/extract-role-from-resume", rt.interviewHandler.ExtractRoleFromResume)
	questions.GET("/user-interviews", rt.interviewHandler.UserInterviews)
	questions.GET("/analytics", rt.interviewHandler.Analytics)

	questions.POST("/schedule-interview", rt.scheduleHandler.ScheduleInterview, requireHR)
	questions.GET("/hr/scheduled-interviews", rt.scheduleHandler.ScheduledInterviews, requireHR)
	questions.DELETE("/hr/scheduled-interviews/:scheduleId", rt.scheduleHandler.CancelSchedule, requireHR)
}

func (rt *Router) setupMediaRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/stt/speech-to-text", rt.speechHandler.SpeechToText, requireAuth)
	g.POST("/tts/synthesize", rt.speechHandler.Synthesize, requireAuth)
	g.GET("/pdf/feedback-report/:interviewId", rt.reportHandler.FeedbackReport, requireAuth)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}

package v1

import (
	"net/http"
	"time"

	"teammatch-backend/config"
	"teammatch-backend/internal/delivery/http/middleware"
	"teammatch-backend/internal/delivery/http/response"
	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	UserUC        domain.UserUsecase
	OpeningUC     domain.OpeningUsecase
	ApplicationUC domain.ApplicationUsecase
	TeamUC        domain.TeamUsecase
	ChatUC        domain.ChatUsecase
	Tokens        *token.Manager
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found")
	})

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes; opening listing/detail attach identity when present
	public := r.Group("")
	public.Use(middleware.OptionalAuthMiddleware(deps.Tokens))

	// Auth endpoints carry a stricter per-IP rate limit
	authPublic := r.Group("")
	authPublic.Use(middleware.AuthRateLimit(middleware.RateLimitConfig{
		Limit:  deps.Config.RateLimitAuthThreshold,
		Window: time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
	}))

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))

	NewAuthHandler(authPublic, protected, deps.AuthUC)
	NewOpeningHandler(public, protected, deps.OpeningUC)
	NewApplicationHandler(protected, deps.ApplicationUC)
	NewTeamHandler(protected, deps.TeamUC)
	NewChatHandler(protected, deps.ChatUC)
	NewUserHandler(public, protected, deps.UserUC, deps.ApplicationUC)

	return r
}

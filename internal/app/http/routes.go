package routes

import (
	adminapi "historinhas-api/internal/api/admin"
	authapi "historinhas-api/internal/api/auth"
	childrenapi "historinhas-api/internal/api/children"
	"historinhas-api/internal/api/kiwifywebhook"
	"historinhas-api/internal/api/plans"
	storiesapi "historinhas-api/internal/api/stories"
	"historinhas-api/internal/api/users"
	"historinhas-api/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Kiwify probes with HEAD before delivering events.
	r.POST("/webhooks/kiwify", kiwifywebhook.KiwifyWebhook)
	r.HEAD("/webhooks/kiwify", kiwifywebhook.KiwifyWebhookHead)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/plans", plans.ListPlans)
	r.GET("/plans/:type/features", plans.GetPlanFeatures)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.PUT("/me", users.UpdateCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/children", childrenapi.ListChildren)
	auth.POST("/children", childrenapi.CreateChild)
	auth.DELETE("/children/:id", childrenapi.DeleteChild)

	auth.GET("/stories", storiesapi.ListStories)
	auth.GET("/stories/:id", storiesapi.GetStory)
	auth.DELETE("/stories/:id", storiesapi.DeleteStory)

	auth.GET("/subscriptions", users.GetMySubscriptions)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription())
	subscribed.POST("/stories/generate", storiesapi.GenerateStory)
	subscribed.POST("/stories", storiesapi.CreateStory)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/users/:id", adminapi.GetUserDetails)
	admin.POST("/users", adminapi.CreateUser)
	admin.GET("/subscriptions", adminapi.ListAllSubscriptions)
	admin.POST("/subscriptions", adminapi.CreateSubscription)
	admin.GET("/stats", adminapi.GetAdminStats)
}

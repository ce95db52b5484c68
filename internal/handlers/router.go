package handlers

import (
	"github.com/farrelzna/Zhourt-URLShortner/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("zhourt_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public auth routes
	r.POST("/api/v1/auth/register", h.RegisterUser)
	r.POST("/api/v1/auth/login", h.LoginUser)
	r.POST("/api/v1/auth/logout", h.LogoutUser)

	// Protected routes
	authorized := r.Group("/api/v1")
	authorized.Use(h.AuthRequired())
	{
		authorized.POST("/links", h.CreateLink)
		authorized.GET("/links", h.ListLinks)
		authorized.GET("/links/:id", h.GetLink)
		authorized.DELETE("/links/:id", h.DeleteLink)
		authorized.GET("/links/:id/stats", h.LinkStats)
		authorized.GET("/stats", h.AccountStats)
		authorized.POST("/auth/apikey", h.GenerateNewAPIKey)
		authorized.DELETE("/auth/account", h.DeleteAccount)
	}

	// Catch-all redirect
	r.GET("/:short_code", h.RedirectToURL)

	return r
}

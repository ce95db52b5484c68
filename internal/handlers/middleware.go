package handlers

import (
	"net/http"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// currentUserID resolves the authenticated account for this request,
// checking the request context (API key auth) before the session.
func currentUserID(c *gin.Context) (uint, bool) {
	if val, exists := c.Get("user_id"); exists {
		if id, ok := val.(uint); ok {
			return id, true
		}
	}

	session := sessions.Default(c)
	if val := session.Get("user_id"); val != nil {
		if id, ok := val.(uint); ok {
			return id, true
		}
	}

	return 0, false
}

func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") != nil {
			c.Next()
			return
		}

		// Fall back to API key auth
		apiKey := c.GetHeader("X-API-Key")
		if apiKey != "" {
			var u models.User
			if err := h.db.Where("api_key = ?", apiKey).First(&u).Error; err == nil {
				c.Set("user_id", u.ID)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

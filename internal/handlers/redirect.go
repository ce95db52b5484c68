package handlers

import (
	"errors"
	"net/http"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/services"

	"github.com/gin-gonic/gin"
)

// RedirectToURL resolves a short or custom code and redirects. The click
// event is enqueued before the redirect but recorded asynchronously; a
// recording failure never reaches the visitor.
func (h *Handler) RedirectToURL(c *gin.Context) {
	code := c.Param("short_code")

	resolved, err := h.resolver.Resolve(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		case errors.Is(err, services.ErrLinkExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Link expired"})
		default:
			h.logger.Error("Resolve failed", "code", code, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	h.recorder.Record(models.Click{
		LinkID:    resolved.LinkID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})

	c.Redirect(http.StatusFound, resolved.OriginalURL)
}

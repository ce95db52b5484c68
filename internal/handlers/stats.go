package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/services"

	"github.com/gin-gonic/gin"
)

func avgForLink(total int64, createdAt time.Time) float64 {
	return services.AvgClicksPerDay(total, createdAt, time.Now())
}

// statsWindow parses the optional ?days=N window filter.
func statsWindow(c *gin.Context) *time.Time {
	raw := c.Query("days")
	if raw == "" {
		return nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return nil
	}
	since := time.Now().AddDate(0, 0, -days)
	return &since
}

// LinkStats returns the aggregated analytics view for one link.
func (h *Handler) LinkStats(c *gin.Context) {
	link, ok := h.ownedLink(c)
	if !ok {
		return
	}

	view, err := h.analytics.Aggregate(c.Request.Context(), []uint{link.ID}, statsWindow(c))
	if err != nil {
		h.logger.Error("Failed to aggregate link stats", "link_id", link.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	view.AvgClicksPerDay = avgForLink(view.TotalClicks, link.CreatedAt)

	c.JSON(http.StatusOK, gin.H{
		"link":  h.linkJSON(link),
		"stats": view,
	})
}

// AccountStats aggregates over every link the current user owns.
func (h *Handler) AccountStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	links, err := h.links.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list links for stats", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.ID)
	}

	view, err := h.analytics.Aggregate(c.Request.Context(), ids, statsWindow(c))
	if err != nil {
		h.logger.Error("Failed to aggregate account stats", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"links_created": len(links),
		"stats":         view,
	})
}

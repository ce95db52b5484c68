package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateLinkRequest struct {
	Title       string `json:"title" binding:"required"`
	OriginalURL string `json:"original_url" binding:"required,url"`
	CustomCode  string `json:"custom_code,omitempty"`
	ExpiryHours *int   `json:"expiry_hours,omitempty"`
}

type linkResponse struct {
	*models.Link
	ShortURL string `json:"short_url"`
}

func (h *Handler) linkJSON(link *models.Link) linkResponse {
	return linkResponse{Link: link, ShortURL: h.shortener.ShortURL(link)}
}

// CreateLink handles the API request to shorten a URL.
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	link, err := h.shortener.CreateLink(c.Request.Context(), services.CreateLinkInput{
		UserID:      userID,
		Title:       req.Title,
		OriginalURL: req.OriginalURL,
		CustomCode:  req.CustomCode,
		ExpiryHours: req.ExpiryHours,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateCode):
			c.JSON(http.StatusConflict, gin.H{"error": "Code already in use"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create link", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		}
		return
	}

	c.JSON(http.StatusCreated, h.linkJSON(link))
}

func (h *Handler) ListLinks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	links, err := h.links.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list links", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list links"})
		return
	}

	out := make([]linkResponse, 0, len(links))
	for i := range links {
		out = append(out, h.linkJSON(&links[i]))
	}
	c.JSON(http.StatusOK, gin.H{"links": out})
}

func (h *Handler) GetLink(c *gin.Context) {
	link, ok := h.ownedLink(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.linkJSON(link))
}

func (h *Handler) DeleteLink(c *gin.Context) {
	link, ok := h.ownedLink(c)
	if !ok {
		return
	}

	if err := h.links.Delete(c.Request.Context(), link.ID, link.UserID); err != nil {
		h.logger.Error("Failed to delete link", "link_id", link.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}

	// Drop stale cache entries so the code stops resolving immediately.
	codes := []string{link.ShortCode}
	if link.CustomCode != nil {
		codes = append(codes, *link.CustomCode)
	}
	h.resolver.Invalidate(c.Request.Context(), codes...)

	c.JSON(http.StatusOK, gin.H{"message": "Link deleted"})
}

// ownedLink loads the link from the :id parameter scoped to the current
// user, writing the error response itself on failure.
func (h *Handler) ownedLink(c *gin.Context) (*models.Link, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link id"})
		return nil, false
	}

	link, err := h.links.FindByID(c.Request.Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		} else {
			h.logger.Error("Failed to load link", "link_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load link"})
		}
		return nil, false
	}
	return link, true
}

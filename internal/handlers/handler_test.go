package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/farrelzna/Zhourt-URLShortner/internal/config"
	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"
	"github.com/farrelzna/Zhourt-URLShortner/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.Link{}, &models.Click{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		BaseURL:       "https://zhourt.in",
		SessionSecret: "test-secret-12345678901234567890123456789012",
	}

	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)

	// Dummy redis client (not connected) with no retries, so every cache
	// call falls through to the database immediately.
	rdb := redis.NewClient(&redis.Options{
		Addr:       "localhost:1",
		MaxRetries: -1,
	})

	geoIP := services.NewGeoIPService(cfg, logger)
	recorder := services.NewClickRecorder(clickRepo, logger, geoIP)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go recorder.Start(ctx)

	resolver := services.NewResolver(linkRepo, rdb, logger)
	shortener := services.NewShortenerService(linkRepo, nil, logger, cfg.BaseURL)
	analytics := services.NewAnalyticsService(linkRepo, clickRepo, logger)

	return NewHandler(cfg, logger, db, linkRepo, shortener, resolver, recorder, analytics), db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := h.SetupRouter(nil)

	// Helper route to log a user in without going through the auth flow.
	r.GET("/test-login/:id", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		session := sessions.Default(c)
		session.Set("user_id", uint(id))
		session.Save()
		c.Status(200)
	})

	return r
}

// sessionFor returns cookies for an authenticated session as userID.
func sessionFor(r *gin.Engine, userID uint) []*http.Cookie {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test-login/"+strconv.FormatUint(uint64(userID), 10), nil)
	r.ServeHTTP(w, req)
	return w.Result().Cookies()
}

func authedRequest(method, path string, body io.Reader, cookies []*http.Cookie) *http.Request {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

package handlers

import (
	"log/slog"

	"github.com/farrelzna/Zhourt-URLShortner/internal/config"
	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"
	"github.com/farrelzna/Zhourt-URLShortner/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *gorm.DB
	links     repository.LinkRepository
	shortener *services.ShortenerService
	resolver  *services.Resolver
	recorder  *services.ClickRecorder
	analytics *services.AnalyticsService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	links repository.LinkRepository,
	shortener *services.ShortenerService,
	resolver *services.Resolver,
	recorder *services.ClickRecorder,
	analytics *services.AnalyticsService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		links:     links,
		shortener: shortener,
		resolver:  resolver,
		recorder:  recorder,
		analytics: analytics,
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/models"
	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"
	"github.com/farrelzna/Zhourt-URLShortner/internal/storage"
	"github.com/farrelzna/Zhourt-URLShortner/pkg/utils"
)

// maxCodeAttempts bounds the collision retry loop for generated codes.
// The 4-char keyspace holds ~1.7M codes, so a handful of attempts is
// plenty at the expected scale.
const maxCodeAttempts = 5

type CreateLinkInput struct {
	UserID      uint
	Title       string
	OriginalURL string
	CustomCode  string
	ExpiryHours *int
}

type ShortenerService struct {
	links         repository.LinkRepository
	uploader      storage.Uploader
	logger        *slog.Logger
	baseURL       string
	codeGenerator func(int) string
}

func NewShortenerService(links repository.LinkRepository, uploader storage.Uploader, logger *slog.Logger, baseURL string) *ShortenerService {
	return &ShortenerService{
		links:         links,
		uploader:      uploader,
		logger:        logger,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		codeGenerator: utils.GenerateShortCode,
	}
}

// ShortURL returns the public short URL for a link.
func (s *ShortenerService) ShortURL(link *models.Link) string {
	return s.baseURL + "/" + link.Code()
}

// CreateLink validates the input, assigns a code and persists the link.
// Custom code collisions surface ErrDuplicateCode immediately; generated
// codes retry a bounded number of times before giving up.
func (s *ShortenerService) CreateLink(ctx context.Context, in CreateLinkInput) (*models.Link, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if in.ExpiryHours != nil && *in.ExpiryHours > 0 {
		t := time.Now().Add(time.Duration(*in.ExpiryHours) * time.Hour)
		expiresAt = &t
	}

	link := &models.Link{
		UserID:      in.UserID,
		Title:       in.Title,
		OriginalURL: in.OriginalURL,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
	}

	var err error
	if in.CustomCode != "" {
		err = s.createWithCustomCode(ctx, link, in.CustomCode)
	} else {
		err = s.createWithGeneratedCode(ctx, link)
	}
	if err != nil {
		return nil, err
	}

	s.attachQR(ctx, link)

	return link, nil
}

func (s *ShortenerService) createWithCustomCode(ctx context.Context, link *models.Link, custom string) error {
	taken, err := s.links.CodeTaken(ctx, custom)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateCode
	}

	link.ShortCode = s.codeGenerator(utils.ShortCodeLength)
	link.CustomCode = &custom
	return s.links.Create(ctx, link)
}

func (s *ShortenerService) createWithGeneratedCode(ctx context.Context, link *models.Link) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.codeGenerator(utils.ShortCodeLength)

		// The unique constraints are per-column, so a generated code that
		// matches someone's custom code would slip through Create. CodeTaken
		// checks both namespaces.
		taken, err := s.links.CodeTaken(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		link.ShortCode = code
		err = s.links.Create(ctx, link)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateCode) {
			return err
		}
	}
	return fmt.Errorf("exhausted %d code attempts: %w", maxCodeAttempts, ErrDuplicateCode)
}

// attachQR renders the short URL's QR image and stores it. Upload trouble
// leaves the link without a QR reference; creation already succeeded.
func (s *ShortenerService) attachQR(ctx context.Context, link *models.Link) {
	if s.uploader == nil {
		return
	}

	png, err := RenderQRPNG(s.ShortURL(link), qrImageSize)
	if err != nil {
		s.logger.Warn("Failed to render QR code", "link_id", link.ID, "error", err)
		return
	}

	name := fmt.Sprintf("qr/%s.png", link.Code())
	publicURL, err := s.uploader.Upload(ctx, name, png, "image/png")
	if err != nil {
		s.logger.Warn("Failed to upload QR code", "link_id", link.ID, "error", err)
		return
	}

	if err := s.links.SetQRURL(ctx, link.ID, publicURL); err != nil {
		s.logger.Warn("Failed to save QR reference", "link_id", link.ID, "error", err)
		return
	}
	link.QRURL = publicURL
}

func validateInput(in CreateLinkInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}

	u, err := url.Parse(in.OriginalURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: destination must be an absolute http(s) URL", ErrValidation)
	}

	if in.CustomCode != "" {
		for _, r := range in.CustomCode {
			if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' && r != '_' {
				return fmt.Errorf("%w: custom code may only contain letters, digits, - and _", ErrValidation)
			}
		}
	}

	return nil
}

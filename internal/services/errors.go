package services

import (
	"errors"

	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"
)

// Service-level error taxonomy. Store errors pass through so callers can
// match with errors.Is regardless of which layer produced them.
var (
	ErrNotFound      = repository.ErrNotFound
	ErrDuplicateCode = repository.ErrDuplicateCode
	ErrLinkExpired   = errors.New("link expired")
	ErrValidation    = errors.New("invalid input")
)

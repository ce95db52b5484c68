package models

import (
	"time"
)

type Link struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string     `gorm:"not null;size:120" json:"title"`
	OriginalURL string     `gorm:"not null;type:text" json:"original_url"`
	ShortCode   string     `gorm:"unique;not null;size:20;index" json:"short_code"`
	CustomCode  *string    `gorm:"unique;size:40" json:"custom_code,omitempty"`
	QRURL       string     `gorm:"type:text" json:"qr_url,omitempty"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`

	Clicks []Click `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"clicks,omitempty"`
}

// Code returns the public identifier used in the short URL. A custom code
// always takes precedence over the generated one.
func (l *Link) Code() string {
	if l.CustomCode != nil && *l.CustomCode != "" {
		return *l.CustomCode
	}
	return l.ShortCode
}

// Expired reports whether the link is past its optional expiry.
func (l *Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

func (Link) TableName() string {
	return "links"
}

package models

import (
	"time"
)

// Click is one immutable record of a single resolution of a link's code.
// Rows are append-only; nothing updates a click after insert.
type Click struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LinkID      uint      `gorm:"not null;index" json:"link_id"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	DeviceType  string    `gorm:"size:20;default:'unknown'" json:"device_type"`
	Browser     string    `gorm:"size:50" json:"browser"`
	OS          string    `gorm:"size:100" json:"os"`
	Country     string    `gorm:"size:100;default:'Unknown'" json:"country"`
	City        string    `gorm:"size:100" json:"city"`
	Referrer    string    `gorm:"size:255;default:'Direct'" json:"referrer"`
	Fingerprint string    `gorm:"size:64;index" json:"-"`

	// Raw request data, enrichment input only. Never persisted.
	UserAgent string `gorm:"-" json:"-"`
	IPAddress string `gorm:"-" json:"-"`
}

func (Click) TableName() string {
	return "clicks"
}

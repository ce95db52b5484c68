package services

import (
	"testing"

	"github.com/farrelzna/Zhourt-URLShortner/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewGeoIPService(t *testing.T) {
	cfg := config.Config{}
	service := NewGeoIPService(cfg, testLogger())

	assert.NotNil(t, service)
	assert.Equal(t, cfg, service.cfg)
}

func TestGeoIPService_Init_Disabled(t *testing.T) {
	service := NewGeoIPService(config.Config{MaxMindAccountID: ""}, testLogger())
	service.Init()
	assert.Nil(t, service.reader)
}

func TestGeoIPService_GetLocation(t *testing.T) {
	service := NewGeoIPService(config.Config{}, testLogger())

	t.Run("Localhost", func(t *testing.T) {
		country, city := service.GetLocation("127.0.0.1")
		assert.Equal(t, "Localhost", country)
		assert.Equal(t, "Local", city)

		country, _ = service.GetLocation("::1")
		assert.Equal(t, "Localhost", country)
	})

	t.Run("No reader loaded", func(t *testing.T) {
		country, city := service.GetLocation("8.8.8.8")
		assert.Equal(t, "Unknown", country)
		assert.Empty(t, city)
	})

	t.Run("Invalid address", func(t *testing.T) {
		country, _ := service.GetLocation("not-an-ip")
		assert.Equal(t, "Unknown", country)
	})
}

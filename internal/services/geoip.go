package services

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/config"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves a client address to a coarse location. Lookups
// degrade to "Unknown" whenever the MaxMind database is missing or the
// address cannot be classified; callers never see an error.
type GeoIPService struct {
	cfg    config.Config
	logger *slog.Logger
	reader *geoip2.Reader
	mu     sync.RWMutex
}

func NewGeoIPService(cfg config.Config, logger *slog.Logger) *GeoIPService {
	return &GeoIPService{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *GeoIPService) Init() {
	if s.cfg.MaxMindAccountID == "" || s.cfg.MaxMindLicenseKey == "" {
		s.logger.Warn("GeoIP: MaxMind credentials not set, lookups disabled")
		return
	}

	dbPath := s.cfg.MaxMindDBPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		s.logger.Error("GeoIP: Failed to create database directory", "error", err)
		return
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		s.logger.Info("GeoIP: Database missing, downloading...")
		if err := s.update(); err != nil {
			s.logger.Error("GeoIP: Initial download failed", "error", err)
		}
	}

	s.reload(dbPath)
}

// StartUpdater refreshes the database once a day until the context ends.
func (s *GeoIPService) StartUpdater(ctx context.Context) {
	if s.cfg.MaxMindAccountID == "" {
		return
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.update(); err != nil {
				s.logger.Error("GeoIP: Update failed", "error", err)
				continue
			}
			s.reload(s.cfg.MaxMindDBPath)
		case <-ctx.Done():
			s.logger.Info("GeoIP: Updater stopping")
			return
		}
	}
}

func (s *GeoIPService) update() error {
	dbDir := filepath.Dir(s.cfg.MaxMindDBPath)
	confPath := filepath.Join(dbDir, "GeoIP.conf")

	content := fmt.Sprintf("AccountID %s\nLicenseKey %s\nEditionIDs %s\nDatabaseDirectory %s\n",
		s.cfg.MaxMindAccountID, s.cfg.MaxMindLicenseKey, s.cfg.MaxMindEditionIDs, dbDir)

	if err := os.WriteFile(confPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write GeoIP.conf: %w", err)
	}
	defer os.Remove(confPath)

	cmd := exec.Command("geoipupdate", "-v", "-f", confPath, "-d", dbDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("geoipupdate failed: %w, output: %s", err, string(output))
	}

	s.logger.Info("GeoIP: Database updated")
	return nil
}

func (s *GeoIPService) reload(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reader != nil {
		s.reader.Close()
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		s.logger.Error("GeoIP: Failed to open database", "path", path, "error", err)
		return
	}
	s.reader = reader
	s.logger.Info("GeoIP: Loaded database", "epoch", reader.Metadata().BuildEpoch)
}

// GetLocation returns country and city for an address.
func (s *GeoIPService) GetLocation(ipStr string) (country, city string) {
	if ipStr == "127.0.0.1" || ipStr == "::1" {
		return "Localhost", "Local"
	}

	s.mu.RLock()
	reader := s.reader
	s.mu.RUnlock()

	if reader == nil {
		return "Unknown", ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "Unknown", ""
	}

	record, err := reader.City(ip)
	if err != nil {
		s.logger.Error("GeoIP: Lookup error", "ip", ipStr, "error", err)
		return "Unknown", ""
	}

	if name, ok := record.Country.Names["en"]; ok {
		country = name
	} else {
		country = record.Country.IsoCode
	}
	if country == "" {
		country = "Unknown"
	}

	if name, ok := record.City.Names["en"]; ok {
		city = name
	}

	return country, city
}

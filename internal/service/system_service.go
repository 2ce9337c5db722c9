package service

import (
	"database/sql"
	"fmt"

	"github.com/skintrack/skin-ledger-backend/internal/database"
	"github.com/skintrack/skin-ledger-backend/internal/repository"
	"github.com/skintrack/skin-ledger-backend/internal/secrets"
	"github.com/skintrack/skin-ledger-backend/internal/version"
)

// settingMarketToken is the settings key holding the encrypted marketplace
// API token.
const settingMarketToken = "market_token"

// SystemService handles system-related operations
type SystemService struct {
	db           *sql.DB
	settingsRepo *repository.SettingsRepository
	codec        *secrets.Codec
}

// NewSystemService creates a new SystemService. codec may be nil when no
// encryption key is configured; token storage is unavailable then.
func NewSystemService(db *sql.DB, settingsRepo *repository.SettingsRepository, codec *secrets.Codec) *SystemService {
	return &SystemService{
		db:           db,
		settingsRepo: settingsRepo,
		codec:        codec,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// Version returns the application version string.
func (s *SystemService) Version() string {
	return version.Version
}

// SetMarketToken stores the marketplace API token encrypted at rest.
func (s *SystemService) SetMarketToken(token string) error {
	if s.codec == nil {
		return fmt.Errorf("token storage requires FERNET_KEY to be configured")
	}

	encrypted, err := s.codec.Encrypt(token)
	if err != nil {
		return fmt.Errorf("failed to encrypt market token: %w", err)
	}
	return s.settingsRepo.Set(settingMarketToken, encrypted)
}

// MarketToken returns the decrypted marketplace API token. The boolean
// reports whether a token has been stored.
func (s *SystemService) MarketToken() (string, bool, error) {
	if s.codec == nil {
		return "", false, fmt.Errorf("token storage requires FERNET_KEY to be configured")
	}

	encrypted, exists, err := s.settingsRepo.Get(settingMarketToken)
	if err != nil || !exists {
		return "", false, err
	}

	token, err := s.codec.Decrypt(encrypted)
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt market token: %w", err)
	}
	return token, true, nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/skinvault/internal/cache"
	"github.com/Veraticus/skinvault/internal/catalog"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/gw2"
)

// DefaultDBPath is where the catalog cache and API key live unless configured.
const DefaultDBPath = "$HOME/.local/share/skinvault/skinvault.db"

// APIKeyEnv is consulted when no api.key is configured.
const APIKeyEnv = "GW2_API_KEY"

// Settings is the resolved configuration of one run.
type Settings struct {
	DBPath     string
	APIKey     string
	Preference catalog.Preference
	LogLevel   string
	LogFormat  string
	API        gw2.Config
	CacheTTL   time.Duration
	BatchSize  int
	Retries    int
	NoPersist  bool
}

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("database.no_persist", false)
	v.SetDefault("api.base_url", gw2.DefaultBaseURL)
	v.SetDefault("api.batch_size", gw2.MaxIDsPerRequest)
	v.SetDefault("api.requests_per_minute", gw2.DefaultRequestsPerMinute)
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.retries", 0)
	v.SetDefault("api.key", "")
	v.SetDefault("cache.ttl", cache.DefaultTTL.String())
	v.SetDefault("catalog.prefer_rarity", string(catalog.PreferLowest))
}

// Load reads Settings from Viper. It follows this precedence:
// 1. Viper configuration (flags, config file or SKINVAULT_ env vars)
// 2. GW2_API_KEY for the API key
// 3. Default values
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		DBPath:    v.GetString("database.path"),
		NoPersist: v.GetBool("database.no_persist"),
		LogLevel:  v.GetString("logging.level"),
		LogFormat: v.GetString("logging.format"),
		APIKey:    v.GetString("api.key"),
		API: gw2.Config{
			BaseURL:           v.GetString("api.base_url"),
			RequestsPerMinute: v.GetInt("api.requests_per_minute"),
			Timeout:           v.GetDuration("api.timeout"),
		},
		BatchSize: v.GetInt("api.batch_size"),
		Retries:   v.GetInt("api.retries"),
		CacheTTL:  v.GetDuration("cache.ttl"),
	}

	if s.DBPath == "" {
		s.DBPath = DefaultDBPath
	}
	s.DBPath = ExpandPath(s.DBPath)

	if s.APIKey == "" {
		s.APIKey = os.Getenv(APIKeyEnv)
	}

	pref, err := catalog.ParsePreference(v.GetString("catalog.prefer_rarity"))
	if err != nil {
		return s, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	s.Preference = pref

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks the settings that cannot be defaulted.
func (s Settings) Validate() error {
	if s.API.BaseURL == "" {
		s.API.BaseURL = gw2.DefaultBaseURL
	}
	if err := s.API.Validate(); err != nil {
		return err
	}
	if s.CacheTTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive", common.ErrInvalidConfig)
	}
	if s.BatchSize < 0 || s.BatchSize > gw2.MaxIDsPerRequest {
		return fmt.Errorf("%w: api.batch_size must be between 1 and %d", common.ErrInvalidConfig, gw2.MaxIDsPerRequest)
	}
	if s.Retries < 0 {
		return fmt.Errorf("%w: api.retries cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

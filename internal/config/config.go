package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const DefaultAPIBaseURL = "https://gww-voice-agent-backend.ca.lyzr.app"

type Config struct {
	Env              string        `mapstructure:"ENV"`
	Port             string        `mapstructure:"PORT" validate:"required,numeric"`
	APIBaseURL       string        `mapstructure:"API_BASE_URL" validate:"required,url"`
	DemoMode         bool          `mapstructure:"DEMO_MODE"`
	CORSAllowed      string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel         string        `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic disabled"`
	AnalyticsRefresh time.Duration `mapstructure:"ANALYTICS_REFRESH" validate:"gte=0"`
	PanelRefresh     time.Duration `mapstructure:"PANEL_REFRESH" validate:"gte=0"`
	FlashTTL         time.Duration `mapstructure:"FLASH_TTL" validate:"gt=0"`
	TurnRevealDelay  time.Duration `mapstructure:"TURN_REVEAL_DELAY" validate:"gte=0"`
	ConversationsLim int           `mapstructure:"CONVERSATIONS_LIMIT" validate:"gt=0"`
	LogsLimit        int           `mapstructure:"LOGS_LIMIT" validate:"gt=0"`
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEMO_MODE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("ANALYTICS_REFRESH", "30s")
	v.SetDefault("PANEL_REFRESH", "15s")
	v.SetDefault("FLASH_TTL", "2s")
	v.SetDefault("TURN_REVEAL_DELAY", "150ms")
	v.SetDefault("CONVERSATIONS_LIMIT", 50)
	v.SetDefault("LOGS_LIMIT", 100)

	// The frontend build variable is honoured when the plain key is unset.
	base := v.GetString("API_BASE_URL")
	if base == "" {
		base = v.GetString("VITE_API_BASE_URL")
	}
	if base == "" {
		base = DefaultAPIBaseURL
	}
	v.Set("API_BASE_URL", strings.TrimRight(base, "/"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

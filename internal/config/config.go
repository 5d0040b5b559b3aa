package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	LLM       LLMConfig
	Maps      MapsConfig
	Recommend RecommendConfig
	Session   SessionConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	CORSOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type LLMConfig struct {
	Provider     string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

type MapsConfig struct {
	APIKey            string
	DirectionsBaseURL string
	GeocodeBaseURL    string
	Timeout           time.Duration
	RateLimit         float64
	RateBurst         int
}

type RecommendConfig struct {
	MaxConcurrency           int
	MissingLegPenaltySeconds int
}

type SessionConfig struct {
	TTL    time.Duration
	Secret string
}

const (
	CredentialOK        = "ok"
	CredentialMissing   = "missing"
	CredentialMalformed = "malformed"
)

var (
	ErrMissing   = errors.New("credential missing")
	ErrMalformed = errors.New("credential malformed")
)

// Load reads .env (if present) and the process environment. Missing
// credentials are not an error here; each feature checks its own.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("LLM_TIMEOUT", 30*time.Second)
	v.SetDefault("DIRECTIONS_BASE_URL", "https://maps.googleapis.com/maps/api/directions/json")
	v.SetDefault("GEOCODE_BASE_URL", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("MAPS_TIMEOUT", 10*time.Second)
	v.SetDefault("MAPS_RATE_LIMIT", 5.0)
	v.SetDefault("MAPS_RATE_BURST", 5)
	v.SetDefault("RECOMMEND_MAX_CONCURRENCY", 4)
	v.SetDefault("RANKING_MISSING_LEG_PENALTY_SECONDS", 0)
	v.SetDefault("SESSION_TTL", 2*time.Hour)
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			GinMode:     v.GetString("GIN_MODE"),
			CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(v.GetString("LLM_PROVIDER")),
			OpenAIAPIKey: v.GetString("OPENAI_API_KEY"),
			OpenAIModel:  v.GetString("OPENAI_MODEL"),
			OpenAIURL:    v.GetString("OPENAI_BASE_URL"),
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			GeminiModel:  v.GetString("GEMINI_MODEL"),
			Timeout:      v.GetDuration("LLM_TIMEOUT"),
		},
		Maps: MapsConfig{
			APIKey:            v.GetString("GOOGLE_MAPS_API_KEY"),
			DirectionsBaseURL: v.GetString("DIRECTIONS_BASE_URL"),
			GeocodeBaseURL:    v.GetString("GEOCODE_BASE_URL"),
			Timeout:           v.GetDuration("MAPS_TIMEOUT"),
			RateLimit:         v.GetFloat64("MAPS_RATE_LIMIT"),
			RateBurst:         v.GetInt("MAPS_RATE_BURST"),
		},
		Recommend: RecommendConfig{
			MaxConcurrency:           v.GetInt("RECOMMEND_MAX_CONCURRENCY"),
			MissingLegPenaltySeconds: v.GetInt("RANKING_MISSING_LEG_PENALTY_SECONDS"),
		},
		Session: SessionConfig{
			TTL:    v.GetDuration("SESSION_TTL"),
			Secret: v.GetString("SESSION_SECRET"),
		},
	}

	if cfg.Recommend.MaxConcurrency < 1 {
		cfg.Recommend.MaxConcurrency = 1
	}
	if cfg.Recommend.MissingLegPenaltySeconds < 0 {
		return nil, fmt.Errorf("RANKING_MISSING_LEG_PENALTY_SECONDS must not be negative")
	}
	if cfg.Maps.RateBurst < 1 {
		cfg.Maps.RateBurst = 1
	}
	if cfg.LLM.Provider != "openai" && cfg.LLM.Provider != "gemini" {
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLM.Provider)
	}
	return cfg, nil
}

// LLMAPIKey returns the key for the selected text generation provider.
func (c *Config) LLMAPIKey() string {
	if c.LLM.Provider == "gemini" {
		return c.LLM.GeminiAPIKey
	}
	return c.LLM.OpenAIAPIKey
}

func (c *Config) LLMKeyName() string {
	if c.LLM.Provider == "gemini" {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func (c *Config) LLMModel() string {
	if c.LLM.Provider == "gemini" {
		return c.LLM.GeminiModel
	}
	return c.LLM.OpenAIModel
}

// CheckCredential classifies a key. OpenAI keys shorter than 20 characters are
// treated as malformed, as are keys with embedded whitespace or line breaks.
func CheckCredential(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", name, ErrMissing)
	}
	if strings.ContainsAny(value, " \t\r\n") {
		return fmt.Errorf("%s: %w", name, ErrMalformed)
	}
	if name == "OPENAI_API_KEY" && len(value) < 20 {
		return fmt.Errorf("%s: %w", name, ErrMalformed)
	}
	return nil
}

type CredentialReport struct {
	Name        string
	Status      string
	Remediation string
}

// Credentials reports each out-of-band credential separately so a missing maps
// key never masks a missing text generation key (or vice versa).
func (c *Config) Credentials() []CredentialReport {
	checks := []struct {
		name    string
		value   string
		feature string
	}{
		{c.LLMKeyName(), c.LLMAPIKey(), "venue suggestions and follow-up answers are disabled"},
		{"GOOGLE_MAPS_API_KEY", c.Maps.APIKey, "travel times fall back to directions links only"},
	}

	reports := make([]CredentialReport, 0, len(checks))
	for _, ch := range checks {
		err := CheckCredential(ch.name, ch.value)
		switch {
		case err == nil:
			reports = append(reports, CredentialReport{Name: ch.name, Status: CredentialOK})
		case errors.Is(err, ErrMalformed):
			reports = append(reports, CredentialReport{
				Name:        ch.name,
				Status:      CredentialMalformed,
				Remediation: fmt.Sprintf("%s looks malformed (%s). Put it on a single line in .env without spaces or line breaks and restart.", ch.name, ch.feature),
			})
		default:
			reports = append(reports, CredentialReport{
				Name:        ch.name,
				Status:      CredentialMissing,
				Remediation: fmt.Sprintf("%s is not set (%s). Add %s=<your key> to .env and restart.", ch.name, ch.feature, ch.name),
			})
		}
	}
	return reports
}

// SessionSecret falls back to a per-process random secret so tokens still work
// (until restart) when SESSION_SECRET is unset.
func (c *Config) SessionSecret() []byte {
	if c.Session.Secret != "" {
		return []byte(c.Session.Secret)
	}
	return processSecret
}

var processSecret = func() []byte {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}()

func splitList(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

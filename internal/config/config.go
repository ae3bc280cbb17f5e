package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// AuthScheme selects how outbound OwnerRez requests are authenticated.
// Both schemes appear across API versions; which one a deployment uses
// is decided here, never inside the client.
type AuthScheme string

const (
	AuthBasic  AuthScheme = "basic"
	AuthAPIKey AuthScheme = "api_key"
)

type Config struct {
	OwnerRezBaseURL  string
	OwnerRezAPIKey   string
	OwnerRezUsername string
	OwnerRezToken    string

	DefaultPropertyID string

	Port    string
	DataDir string
}

func Load() (*Config, error) {
	// .env is optional — env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		OwnerRezBaseURL:   os.Getenv("OWNERREZ_BASE_URL"),
		OwnerRezAPIKey:    os.Getenv("OWNERREZ_API_KEY"),
		OwnerRezUsername:  os.Getenv("OWNERREZ_USERNAME"),
		OwnerRezToken:     os.Getenv("OWNERREZ_TOKEN"),
		DefaultPropertyID: os.Getenv("OWNERREZ_DEFAULT_PROPERTY_ID"),
		Port:              os.Getenv("PORT"),
		DataDir:           os.Getenv("DATA_DIR"),
	}

	if cfg.OwnerRezBaseURL == "" {
		cfg.OwnerRezBaseURL = "https://api.ownerrez.com"
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}

	if _, err := cfg.Auth(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Auth resolves the configured credentials into a scheme. Basic wins when
// both are set, since username+token is the v2-era scheme.
func (c *Config) Auth() (AuthScheme, error) {
	switch {
	case c.OwnerRezUsername != "" && c.OwnerRezToken != "":
		return AuthBasic, nil
	case c.OwnerRezUsername != "" || c.OwnerRezToken != "":
		return "", fmt.Errorf("OWNERREZ_USERNAME and OWNERREZ_TOKEN must be set together")
	case c.OwnerRezAPIKey != "":
		return AuthAPIKey, nil
	default:
		return "", fmt.Errorf("either OWNERREZ_USERNAME/OWNERREZ_TOKEN or OWNERREZ_API_KEY must be set")
	}
}

package config

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every environment variable the client reads.
const EnvPrefix = "MOVIECAT_"

// Config holds runtime settings for the moviecat CLI.
//
// Fields:
//   - APIBaseURL: root URL of the remote movie service.
//   - RequestTimeout: upper bound for a single request.
//   - DataDir, DBFile: where the local session database lives.
//   - LogLevel, LogFormat: diagnostics on stderr (text or json).
//   - TrustCachedIdentity: accept a stored identity at startup without
//     asking the service again.
//   - OnlineCheckInterval: how often the client checks server reachability.
type Config struct {
	APIBaseURL          string        `env:"API_BASE_URL, overwrite"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT, overwrite"`
	DataDir             string        `env:"DATA_DIR, overwrite"`
	DBFile              string        `env:"DB_FILE, overwrite"`
	LogLevel            string        `env:"LOG_LEVEL, overwrite"`
	LogFormat           string        `env:"LOG_FORMAT, overwrite"`
	TrustCachedIdentity bool          `env:"TRUST_CACHED_IDENTITY, overwrite"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL, overwrite"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://movieapp-api-lms1.onrender.com"
	c.RequestTimeout = 10 * time.Second
	c.DataDir = "data"
	c.DBFile = "session.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.TrustCachedIdentity = true
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from .env and the environment, a JSON file (if present) and command-line
// flags (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg, envconfig.OsLookuper())
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// parseEnv overlays cfg with MOVIECAT_* variables found by l. Variables that
// are not set leave the field alone.
func parseEnv(cfg *Config, l envconfig.Lookuper) {
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	})
	if err != nil {
		panic(fmt.Sprintf("config: failed to load environment: %v", err))
	}
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	if c.DBFile == "" {
		return fmt.Errorf("db file is empty")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// DBPath joins dataDir and the database file name.
func (c *Config) DBPath(dataDir string) string {
	return filepath.Join(dataDir, c.DBFile)
}

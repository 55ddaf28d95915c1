package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/fireme/internal/dashboard/store/drivers/redis"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/notify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Credential backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Notice transports.
const (
	TransportGoChannel   = "gochannel"
	TransportRedisStream = "redisstream"
)

type Config struct {
	APIURL         string        `mapstructure:"api_url"`         // Backend base URL (default: http://127.0.0.1:8000/)
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // Per-request bound (default: 30s)
	RefreshTimeout time.Duration `mapstructure:"refresh_timeout"` // Token refresh bound (default: 15s)
	RateLimit      int           `mapstructure:"rate_limit"`      // Outbound requests per minute, 0 disables (default: 600)
	RateBurst      int           `mapstructure:"rate_burst"`      // Outbound burst (default: 20)

	CredentialsBackend string `mapstructure:"credentials_backend"` // sqlite, redis or memory (default: sqlite)
	CredentialsFile    string `mapstructure:"credentials_file"`    // sqlite file (default: <user config dir>/fireme/credentials.db)
	CredentialsKey     string `mapstructure:"credentials_key"`     // Optional: passphrase sealing stored tokens
	RedisURL           string `mapstructure:"redis_url"`           // (default: redis://localhost:6379/0)
	RedisPrefix        string `mapstructure:"redis_prefix"`        // Credential key prefix (default: fireme:credentials:)

	NotifyTransport string `mapstructure:"notify_transport"` // gochannel or redisstream (default: gochannel)
	NotifyTopic     string `mapstructure:"notify_topic"`     // (default: fireme.notifications)

	Env       string `mapstructure:"env"`        // Environment (dev, staging, prod) (default: prod)
	LogLevel  string `mapstructure:"log_level"`  // Log level (default: warn)
	LogFormat string `mapstructure:"log_format"` // Log format (default: text)
}

// envNames maps config keys that don't carry the FIREME_ prefix.
var envNames = map[string]string{
	"env":        "ENV",
	"log_level":  "LOG_LEVEL",
	"log_format": "LOG_FORMAT",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("fireme")
	v.AutomaticEnv()
	v.AllowEmptyEnv(false)

	v.SetDefault("api_url", apisdk.DefaultBaseURL)
	v.SetDefault("request_timeout", apisdk.DefaultRequestTimeout)
	v.SetDefault("refresh_timeout", apisdk.DefaultRefreshTimeout)
	v.SetDefault("rate_limit", 600)
	v.SetDefault("rate_burst", 20)
	v.SetDefault("credentials_backend", BackendSQLite)
	v.SetDefault("credentials_file", defaultCredentialsFile())
	v.SetDefault("credentials_key", "")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("redis_prefix", redis.DefaultPrefix)
	v.SetDefault("notify_transport", TransportGoChannel)
	v.SetDefault("notify_topic", notify.DefaultTopic)
	v.SetDefault("env", "prod")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	for key, env := range envNames {
		_ = v.BindEnv(key, env)
	}
	return v
}

// GlobalFlags registers the flags every command accepts. Parsed values win
// over the environment and the config file.
func GlobalFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "", "backend base URL")
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("log-level", "", "debug, info, warn or error")
}

// LoadConfig reads FIREME_* variables, the optional FIREME_CONFIG (or
// --config) file and any global flags in fs.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := newViper()

	if fs != nil {
		for key, flag := range map[string]string{"api_url": "api-url", "log_level": "log-level"} {
			if f := fs.Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	file := os.Getenv("FIREME_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			file = f.Value.String()
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url %q is not an absolute URL", c.APIURL))
	}
	switch c.CredentialsBackend {
	case BackendSQLite:
		if c.CredentialsFile == "" {
			errs = append(errs, errors.New("credentials_file is required for the sqlite backend"))
		}
	case BackendRedis, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown credentials_backend %q", c.CredentialsBackend))
	}
	switch c.NotifyTransport {
	case TransportGoChannel, TransportRedisStream:
	default:
		errs = append(errs, fmt.Errorf("unknown notify_transport %q", c.NotifyTransport))
	}
	if c.RequestTimeout <= 0 || c.RefreshTimeout <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate limits cannot be negative"))
	}
	return errors.Join(errs...)
}

// needsRedis reports whether any component talks to Redis.
func (c Config) needsRedis() bool {
	return c.CredentialsBackend == BackendRedis || c.NotifyTransport == TransportRedisStream
}

func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fireme-credentials.db"
	}
	return filepath.Join(dir, "fireme", "credentials.db")
}

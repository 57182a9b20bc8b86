package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Import    ImportConfig
	Redis     RedisConfig
	CacheTTLs CacheTTLConfig
	Auth      AuthConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int // bytes
}

// BackendConfig points at the remote content-management REST API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ImportConfig struct {
	MaxRows       int
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// CacheTTLConfig holds TTLs as duration strings ("5m").
type CacheTTLConfig struct {
	TestList string
}

type AuthConfig struct {
	JWTSecret string // empty disables operator authentication
}

type LoggerConfig struct {
	Level string
	Env   string
}

const (
	DefaultBackendBaseURL = "https://master-backend-18ik.onrender.com/api"
	DefaultBackendTimeout = 30 * time.Second
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.body_limit", 10*1024*1024)
	v.SetDefault("backend.base_url", DefaultBackendBaseURL)
	v.SetDefault("backend.timeout", DefaultBackendTimeout.String())
	v.SetDefault("import.max_rows", 1000)
	v.SetDefault("import.session_ttl", "30m")
	v.SetDefault("import.sweep_interval", "1m")
	v.SetDefault("cache_ttls.test_list", "5m")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

// LoadConfig reads .env (if any), then config.yaml (if any), then the
// environment. BACKEND_BASE_URL overrides backend.base_url and so on.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(v.GetString("backend.base_url"), "/"),
			Timeout: v.GetDuration("backend.timeout"),
		},
		Import: ImportConfig{
			MaxRows:       v.GetInt("import.max_rows"),
			SessionTTL:    v.GetDuration("import.session_ttl"),
			SweepInterval: v.GetDuration("import.sweep_interval"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CacheTTLs: CacheTTLConfig{
			TestList: v.GetString("cache_ttls.test_list"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, errors.New("backend.base_url must not be empty")
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = DefaultBackendTimeout
	}
	return cfg, nil
}

// ParseTTLStringOrDefault parses a duration string, falling back to
// defaultTTL when it is empty or malformed.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	duration, err := time.ParseDuration(ttlString)
	if err != nil || duration <= 0 {
		return defaultTTL
	}
	return duration
}

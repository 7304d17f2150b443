package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/internal/tracing"
	"github.com/iwvelando/realestate-calc/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Environment variables that override the configuration file.
const (
	EnvAddress      = "REALESTATE_CALC_ADDRESS"
	EnvRedisAddress = "REALESTATE_CALC_REDIS_ADDR"
	EnvOTELEndpoint = "OTEL_ENDPOINT"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxUploadSize   string               `yaml:"maxUploadSize"`
	Logging         config.LoggingConfig `yaml:"logging"`
	Cache           CacheConfig          `yaml:"cache"`
	Tracing         tracing.Config       `yaml:"tracing"`
	RateLimit       RateLimitConfig      `yaml:"rateLimit"`
	uploadSizeBytes int64
	cacheTTL        time.Duration
}

// CacheConfig selects where computed responses are cached.
type CacheConfig struct {
	Backend   string `yaml:"backend"` // none, memory, redis
	RedisAddr string `yaml:"redisAddr"`
	TTL       string `yaml:"ttl"` // Go duration, e.g. 5m
}

// RateLimitConfig limits API requests per client address. Zero disables it.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requestsPerMinute"`
}

func defaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		Logging:         config.LoggingConfig{},
		Cache:           CacheConfig{Backend: CacheBackendMemory},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
		cacheTTL:        constants.DefaultCacheTTLSeconds * time.Second,
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. A Redis address
// implies the redis cache backend.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if addr := strings.TrimSpace(getenv(EnvAddress)); addr != "" {
		c.Address = addr
	}
	if redisAddr := strings.TrimSpace(getenv(EnvRedisAddress)); redisAddr != "" {
		c.Cache.Backend = CacheBackendRedis
		c.Cache.RedisAddr = redisAddr
	}
	if endpoint := strings.TrimSpace(getenv(EnvOTELEndpoint)); endpoint != "" {
		c.Tracing.Endpoint = endpoint
	}
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = fmt.Sprintf("%d", size)
	}
}

// CacheTTL returns the lifetime of cached responses.
func (c *Config) CacheTTL() time.Duration {
	return c.cacheTTL
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = CacheBackendMemory
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis:
		if strings.TrimSpace(c.Cache.RedisAddr) == "" {
			return fmt.Errorf("cache backend redis requires redisAddr")
		}
	default:
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}

	c.cacheTTL = constants.DefaultCacheTTLSeconds * time.Second
	if ttl := strings.TrimSpace(c.Cache.TTL); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid cache ttl %q: %w", ttl, err)
		}
		c.cacheTTL = parsed
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rateLimit.requestsPerMinute must not be negative")
	}

	sizeStr := strings.TrimSpace(c.MaxUploadSize)
	if sizeStr == "" {
		c.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		c.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	if n < 0 {
		return 0, fmt.Errorf("invalid size value %q: must not be negative", value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}

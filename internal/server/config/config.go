// Package config собирает настройки сервера:
// значения по умолчанию, затем .env файл, переменные окружения GOPHSOCIAL_* и флаги.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// DefaultEnvFile файл, который читается при старте, если существует
const DefaultEnvFile = ".env"

// Config настройки сервера
type Config struct {
	Addr            string        `env:"GOPHSOCIAL_ADDR"`
	DatabaseDriver  string        `env:"GOPHSOCIAL_DB_DRIVER"`
	DatabaseDSN     string        `env:"GOPHSOCIAL_DB_DSN"`
	JWTSecret       string        `env:"GOPHSOCIAL_JWT_SECRET"`
	LogLevel        string        `env:"GOPHSOCIAL_LOG_LEVEL"`
	TokenTTL        time.Duration `env:"GOPHSOCIAL_TOKEN_TTL"`
	ShutdownTimeout time.Duration `env:"GOPHSOCIAL_SHUTDOWN_TIMEOUT"`
	AuthRateLimit   float64       `env:"GOPHSOCIAL_AUTH_RATE_LIMIT"`
	AuthRateBurst   int           `env:"GOPHSOCIAL_AUTH_RATE_BURST"`
	BcryptCost      int           `env:"GOPHSOCIAL_BCRYPT_COST"`
	// TrustedProxies CIDR или IP через запятую; только от них читается X-Forwarded-For
	TrustedProxies  string        `env:"GOPHSOCIAL_TRUSTED_PROXIES"`
	ShowVersion     bool
}

// Default возвращает настройки для локального запуска.
// JWTSecret пустой: его нужно задать явно.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		DatabaseDriver:  "sqlite",
		DatabaseDSN:     "gophsocial.db",
		LogLevel:        "info",
		TokenTTL:        24 * time.Hour,
		ShutdownTimeout: 10 * time.Second,
		AuthRateLimit:   5,
		AuthRateBurst:   10,
		BcryptCost:      10,
	}
}

// Load применяет слои по порядку: defaults, envFile, окружение, args.
// Отсутствующий envFile не ошибка.
func Load(envFile string, args []string) (*Config, error) {
	cfg := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.ShowVersion {
		return cfg, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv накладывает заданные переменные окружения поверх cfg
func loadEnv(cfg *Config) error {
	err := envdecode.Decode(cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("decode environment: %w", err)
	}
	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("address must not be empty"))
	}
	switch c.DatabaseDriver {
	case "sqlite", "pgx":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q (want sqlite or pgx)", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN must not be empty"))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT secret must be set (GOPHSOCIAL_JWT_SECRET or -k)"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token TTL must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst < 1 {
		errs = append(errs, errors.New("auth rate limit and burst must be positive"))
	}
	// bcrypt.MinCost..bcrypt.MaxCost
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range 4..31", c.BcryptCost))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.TrustedProxyNets(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// TrustedProxyNets разбирает TrustedProxies. Одиночный IP становится сетью /32 или /128.
func (c *Config) TrustedProxyNets() ([]*net.IPNet, error) {
	var nets []*net.IPNet
	for _, item := range strings.Split(c.TrustedProxies, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.Contains(item, "/") {
			ip := net.ParseIP(item)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", item)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(item)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// SlogLevel уровень логирования; неизвестное значение дает Info
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

package config

import (
	"flag"
	"fmt"
)

// parseFlags накладывает флаги командной строки; значения по умолчанию берутся из cfg
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("gophsocial-server", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver: sqlite or pgx")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (file path for sqlite)")
	fs.StringVar(&cfg.JWTSecret, "k", cfg.JWTSecret, "HMAC secret for session tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "session token lifetime")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	fs.Float64Var(&cfg.AuthRateLimit, "auth-rate", cfg.AuthRateLimit, "auth requests per second per IP")
	fs.IntVar(&cfg.AuthRateBurst, "auth-burst", cfg.AuthRateBurst, "auth request burst per IP")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost factor")
	fs.StringVar(&cfg.TrustedProxies, "trusted-proxies", cfg.TrustedProxies, "comma-separated proxy CIDRs allowed to set X-Forwarded-For")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return nil
}

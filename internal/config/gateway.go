package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/gateway"
	"github.com/Veraticus/sortbin/internal/upload"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyBaseURL   = "gateway.base_url"
	KeyAPIPrefix = "gateway.api_prefix"
	KeyTimeout   = "gateway.timeout"
	KeyMaxBytes  = "upload.max_bytes"
	KeyTheme     = "tui.theme"
	KeyLogLevel  = "logging.level"
	KeyLogFormat = "logging.format"
	KeyLogFile   = "logging.file"
)

// EnvPrefix is the prefix of every environment override, e.g.
// SORTBIN_GATEWAY_BASE_URL.
const EnvPrefix = "SORTBIN"

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, gateway.DefaultBaseURL)
	v.SetDefault(KeyAPIPrefix, gateway.DefaultAPIPrefix)
	v.SetDefault(KeyTimeout, gateway.DefaultTimeout)
	v.SetDefault(KeyMaxBytes, upload.DefaultMaxBytes)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "~/.config/sortbin/sortbin.log")
}

// BindEnv makes v read SORTBIN_ variables, mapping dots to underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		path = ExpandPath(path)
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}

// LoadGatewayConfig builds a validated gateway config from v.
func LoadGatewayConfig(v *viper.Viper) (gateway.Config, error) {
	cfg := gateway.DefaultConfig()

	if s := strings.TrimSpace(v.GetString(KeyBaseURL)); s != "" {
		cfg.BaseURL = strings.TrimRight(s, "/")
	}
	if v.IsSet(KeyAPIPrefix) {
		cfg.APIPrefix = v.GetString(KeyAPIPrefix)
	}

	timeout, err := durationValue(v, KeyTimeout)
	if err != nil {
		return gateway.Config{}, err
	}
	if timeout != 0 {
		cfg.Timeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return gateway.Config{}, err
	}
	return cfg, nil
}

// MaxUploadBytes returns the local upload limit. Zero disables the check.
func MaxUploadBytes(v *viper.Viper) (int64, error) {
	n := v.GetInt64(KeyMaxBytes)
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyMaxBytes)
	}
	return n, nil
}

// durationValue accepts "30s" style strings as well as plain seconds.
func durationValue(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	if secs := v.GetInt(key); secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("%w: %s: cannot parse %q as a duration", common.ErrInvalidConfig, key, raw)
}

// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config is the configuration of the backend.
type Config struct {
	APIURL           string        `mapstructure:"api_url"`
	Port             int           `mapstructure:"port"`
	DBPath           string        `mapstructure:"db_path"`
	GinMode          string        `mapstructure:"gin_mode"`
	LogFormat        string        `mapstructure:"log_format"`
	LogLevel         string        `mapstructure:"log_level"`
	CORSAllowOrigins string        `mapstructure:"cors_allow_origins"`
	EnablePprof      bool          `mapstructure:"enable_pprof"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	JWTTTL           time.Duration `mapstructure:"jwt_ttl"`
	BcryptCost       int           `mapstructure:"bcrypt_cost"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
}

var defaults = map[string]any{
	"api_url":            "",
	"port":               8080,
	"db_path":            "data/gorm.db",
	"gin_mode":           gin.ReleaseMode,
	"log_format":         "",
	"log_level":          "",
	"cors_allow_origins": "",
	"enable_pprof":       false,
	"jwt_secret":         "",
	"jwt_ttl":            "168h",
	"bcrypt_cost":        10,
	"shutdown_timeout":   "10s",
}

// Load reads the configuration from environment variables.
//
// Unset variables use their defaults. The result is not validated,
// call Validate for that.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("could not parse configuration: %w", err)
	}

	// Outside of release mode, tokens are only valid for the lifetime of the process
	if c.JWTSecret == "" && c.GinMode != gin.ReleaseMode {
		log.Warn().Msg("JWT_SECRET is not set, using a random secret")
		c.JWTSecret = uuid.NewString()
	}

	return c, nil
}

// Validate reports all invalid configuration values at once.
func (c Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("API_URL must be set"))
	} else if u, err := url.Parse(c.APIURL); err != nil || !u.IsAbs() {
		errs = append(errs, fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}

	switch c.GinMode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE must be one of release, debug, test, got %q", c.GinMode))
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL is invalid: %w", err))
		}
	}

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}

	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL))
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}

// URL returns the parsed API_URL.
func (c Config) URL() (*url.URL, error) {
	return url.Parse(c.APIURL)
}

// AllowOrigins returns the origins allowed for CORS requests.
func (c Config) AllowOrigins() []string {
	return strings.Fields(c.CORSAllowOrigins)
}

// Level returns the configured log level.
//
// Without LOG_LEVEL, debug mode logs at debug level, everything else at info.
func (c Config) Level() zerolog.Level {
	if level, err := zerolog.ParseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
		return level
	}

	if c.GinMode == gin.DebugMode {
		return zerolog.DebugLevel
	}

	return zerolog.InfoLevel
}

// HumanLogs reports whether logs should be written for humans instead of as JSON.
//
// If LOG_FORMAT is not set, it defaults to human readable for development
// and JSON for release.
func (c Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == gin.DebugMode
	}

	return c.LogFormat == "human"
}

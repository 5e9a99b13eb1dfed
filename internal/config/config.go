// Package config provides configuration management for go-helloapi.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Default settings, each overridable by environment variable
	DefaultAppName    = "go-helloapi"
	DefaultHost       = "0.0.0.0"
	DefaultListenPort = 8000
	DefaultLogLevel   = "info"
)

// Settings holds the runtime configuration for go-helloapi.
// Loaded once at process start and immutable afterwards: every other
// component gets a read-only *Settings passed in at construction time.
type Settings struct {
	AppName        string   `json:"app_name"`
	AppVersion     string   `json:"app_version"`
	Debug          bool     `json:"debug"`
	Host           string   `json:"host"`
	Port           int      `json:"port"`
	LogLevel       string   `json:"log_level"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// ConfigError reports an environment value that failed validation.
// Startup must abort before binding when Load returns one.
type ConfigError struct {
	Var    string // environment variable name
	Value  string // offending value
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s=%q: %s", e.Var, e.Value, e.Reason)
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// NewDefaultSettings returns settings with built-in defaults, ignoring the environment.
func NewDefaultSettings() *Settings {
	return &Settings{
		AppName:        DefaultAppName,
		AppVersion:     AppVersion,
		Debug:          false,
		Host:           DefaultHost,
		Port:           DefaultListenPort,
		LogLevel:       DefaultLogLevel,
		AllowedOrigins: []string{"*"},
	}
}

// Load builds Settings from defaults overridden by environment variables:
// APP_NAME, APP_VERSION, DEBUG, HOST, PORT, LOG_LEVEL, ALLOWED_ORIGINS.
func Load() (*Settings, error) {
	s := NewDefaultSettings()

	if v := os.Getenv("APP_NAME"); v != "" {
		s.AppName = v
	}
	if v := os.Getenv("APP_VERSION"); v != "" {
		s.AppVersion = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &ConfigError{Var: "DEBUG", Value: v, Reason: "must be a boolean"}
		}
		s.Debug = debug
	}
	if v := os.Getenv("HOST"); v != "" {
		s.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ConfigError{Var: "PORT", Value: v, Reason: "must be an integer"}
		}
		if port < 1 || port > 65535 {
			return nil, &ConfigError{Var: "PORT", Value: v, Reason: "must be between 1 and 65535"}
		}
		s.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level := strings.ToLower(v)
		if !validLogLevels[level] {
			return nil, &ConfigError{Var: "LOG_LEVEL", Value: v, Reason: "must be one of: debug, info, warn, error"}
		}
		s.LogLevel = level
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := []string{}
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) == 0 {
			return nil, &ConfigError{Var: "ALLOWED_ORIGINS", Value: v, Reason: "must contain at least one origin"}
		}
		s.AllowedOrigins = origins
	}

	return s, nil
}

var (
	loadOnce    sync.Once
	settings    *Settings
	settingsErr error
)

// Get returns the process-wide Settings singleton, loading from the
// environment on first call. Later calls return the identical value
// regardless of environment changes (no hot-reload).
func Get() (*Settings, error) {
	loadOnce.Do(func() {
		settings, settingsErr = Load()
	})
	return settings, settingsErr
}

// Addr returns the host:port string the server binds to.
func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// OriginAllowed reports whether the given Origin header value may make
// cross-origin requests. A configured "*" allows any origin.
func (s *Settings) OriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range s.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

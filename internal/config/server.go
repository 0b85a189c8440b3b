package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the API server settings, read from PVYIELD_* environment variables.
type ServerConfig struct {
	Port           string
	Env            string
	ArrayDir       string
	StaticDir      string
	LogLevel       string
	LogFormat      string
	StoreTTL       time.Duration
	AllowedOrigins []string
}

func (s ServerConfig) Production() bool { return s.Env == "production" }

func LoadServer() (*ServerConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("PVYIELD")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("array_dir", "./examples/arrays")
	v.SetDefault("static_dir", "./web/dist")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("store_ttl", "1h")
	v.SetDefault("allowed_origins", "*")

	ttl := v.GetDuration("store_ttl")
	if ttl <= 0 {
		return nil, fmt.Errorf("store_ttl must be a positive duration, got %q", v.GetString("store_ttl"))
	}

	return &ServerConfig{
		Port:           v.GetString("port"),
		Env:            v.GetString("env"),
		ArrayDir:       v.GetString("array_dir"),
		StaticDir:      v.GetString("static_dir"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		StoreTTL:       ttl,
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
	}, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/communityhub/internal/flagx"
	"github.com/dmitrijs2005/communityhub/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Zero values mean
// "not set" and leave the current value alone.
type FileConfig struct {
	ServerURL       string         `json:"server_url" yaml:"server_url"`
	DatabasePath    string         `json:"database_path" yaml:"database_path"`
	RequestTimeout  timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	NotificationTTL timex.Duration `json:"notification_ttl" yaml:"notification_ttl"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	var fc FileConfig
	if err := decodeFile(path, &fc); err != nil {
		return err
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.NotificationTTL.Duration > 0 {
		cfg.NotificationTTL = fc.NotificationTTL.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}

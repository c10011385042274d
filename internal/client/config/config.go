package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the CommunityHub CLI.
type Config struct {
	ServerURL       string
	DatabasePath    string
	RequestTimeout  time.Duration
	NotificationTTL time.Duration
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DatabasePath = "communityhub.db"
	c.RequestTimeout = 30 * time.Second
	c.NotificationTTL = 5 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig builds a Config from defaults, the optional config file and the
// process arguments, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/communityhub/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Empty values leave
// the current setting alone.
type FileConfig struct {
	Address        string `json:"address" yaml:"address"`
	DatabaseDSN    string `json:"database_dsn" yaml:"database_dsn"`
	AdminPassword  string `json:"admin_password" yaml:"admin_password"`
	UploadDir      string `json:"upload_dir" yaml:"upload_dir"`
	MaxUploadSize  int64  `json:"max_upload_size" yaml:"max_upload_size"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
	S3User         string `json:"s3_user" yaml:"s3_user"`
	S3Password     string `json:"s3_password" yaml:"s3_password"`
	S3Bucket       string `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region       string `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
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

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Address, fc.Address)
	set(&cfg.DatabaseDSN, fc.DatabaseDSN)
	set(&cfg.AdminPassword, fc.AdminPassword)
	set(&cfg.UploadDir, fc.UploadDir)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.S3User, fc.S3User)
	set(&cfg.S3Password, fc.S3Password)
	set(&cfg.S3Bucket, fc.S3Bucket)
	set(&cfg.S3Region, fc.S3Region)
	set(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	if fc.MaxUploadSize > 0 {
		cfg.MaxUploadSize = fc.MaxUploadSize
	}
	return nil
}

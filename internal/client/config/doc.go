// Package config loads runtime configuration for the CommunityHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the CommunityHub API
//	-d string   path of the local SQLite database holding the session
//	-t int      request timeout (seconds)
//	-n int      notification lifetime (seconds)
//	-l string   log level: debug, info, warn or error
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	server_url: http://127.0.0.1:8000
//	database_path: communityhub.db
//	request_timeout: 30s
//	notification_ttl: 5s
//	log_level: warn
//
// Keys missing from the file keep their default.
package config

package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/communityhub/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about. Other arguments are
// filtered out with flagx.FilterArgs so components can share os.Args.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-n", "-l"})

	fs := flag.NewFlagSet("communityhub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	ttl := fs.Int("n", int(cfg.NotificationTTL.Seconds()), "notification lifetime (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.NotificationTTL = time.Duration(*ttl) * time.Second
	return nil
}

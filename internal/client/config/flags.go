package config

import (
	"flag"
	"os"
	"time"

	"gestoria/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API (default from Config)
//	-d int      pause between queued uploads in milliseconds (default from Config)
//	-i int      session validation interval in seconds (default from Config)
//	-l int      rows per history refresh (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend API")
	uploadDelay := fs.Int("d", int(cfg.UploadDelay.Milliseconds()), "pause between queued uploads (in milliseconds)")
	validateInterval := fs.Int("i", int(cfg.ValidateInterval.Seconds()), "session validation interval (in seconds)")
	fs.IntVar(&cfg.HistoryLimit, "l", cfg.HistoryLimit, "rows per history refresh")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.UploadDelay = time.Duration(*uploadDelay) * time.Millisecond
	cfg.ValidateInterval = time.Duration(*validateInterval) * time.Second
}

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"flickrindexer/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// options holds the global flags
type options struct {
	configFile string
	logLevel   string
	profile    string
}

// newRootCmd builds the command tree. Running it without a subcommand
// indexes every configured collection.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "flickr-indexer",
		Short: "Index Flickr search results into per-collection SQLite tables",
		Long: `flickr-indexer runs the Flickr searches listed in config.json and stores
the photos it finds in one SQLite table per collection.

Only freely licensed photos with a large image size are kept, at most
result_limit per query. Photos already in a table are left untouched, so
the indexer can be re-run at any time.

API credentials are read from config.json, FLICKR_INDEXER_API_KEY and
FLICKR_INDEXER_API_SECRET, or the system keyring (see "auth login").`,
		Example: `  # Index using ./config.json
  flickr-indexer

  # Use another config file with debug logging
  flickr-indexer -c cats.json --log-level debug`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./config.json)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "keyring profile holding the API credentials")

	rootCmd.SetVersionTemplate(`flickr-indexer {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newAuthCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		ui.NewPrinter(os.Stderr).Error("flickr-indexer failed", err)
		os.Exit(1)
	}
}

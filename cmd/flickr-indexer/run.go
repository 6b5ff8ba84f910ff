package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"flickrindexer/pkg/config"
	"flickrindexer/pkg/credentials"
	"flickrindexer/pkg/indexer"
	"flickrindexer/pkg/logger"
	"flickrindexer/pkg/ui"
)

func runIndex(cmd *cobra.Command, opts *options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.configFile, credentials.NewKeyringStore().Lookup(opts.profile))
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return err
	}
	log := logger.GetLogger()

	log.WithFields(map[string]interface{}{
		"version":     version,
		"collections": len(cfg.Queries),
		"limit":       cfg.Limit(),
	}).Info("Flickr indexer starting")

	summary, err := indexer.New(cfg, indexer.NewFlickrClient(cfg, log), log).Run(ctx)
	if err != nil {
		log.WithError(err).Error("Indexing failed")
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Success("Indexing complete")
	p.Info("Collections", summary.Collections)
	p.Info("Queries", summary.Queries)
	p.Info("Rows accepted", summary.Rows)
	p.Info("Duration", summary.Duration.Round(time.Millisecond))

	return nil
}

package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flickrindexer/pkg/config"
	"flickrindexer/pkg/flickr"
	"flickrindexer/pkg/logger"
	"flickrindexer/pkg/ratelimit"
	"flickrindexer/pkg/store"
)

// Indexer runs every configured query and stores the results per collection
type Indexer struct {
	config *config.Config
	client FlickrClient
	logger logger.Logger
}

// Summary describes a finished run
type Summary struct {
	Collections int
	Queries     int
	// Rows accepted by the materializer; rows already in a table are
	// counted even though the insert is ignored
	Rows     int
	Duration time.Duration
}

// NewFlickrClient builds a client from the API and HTTP settings in cfg
func NewFlickrClient(cfg *config.Config, log logger.Logger) *flickr.Client {
	if log == nil {
		log = logger.GetLogger()
	}

	limiter := ratelimit.Unlimited()
	if cfg.RateLimit.RequestsPerHour > 0 {
		limiter = ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerHour, time.Hour)
	}

	return flickr.NewClient(
		cfg.APIKey,
		cfg.APISecret,
		cfg.HTTP.Timeout,
		log.WithField("component", "flickr"),
		flickr.WithBaseURL(cfg.HTTP.BaseURL),
		flickr.WithLimiter(limiter),
	)
}

// New creates an Indexer
func New(cfg *config.Config, client FlickrClient, log logger.Logger) *Indexer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Indexer{
		config: cfg,
		client: client,
		logger: log,
	}
}

// Run executes the whole pipeline. Any error stops the run; rows already
// committed for earlier queries stay in their tables.
func (ix *Indexer) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	if err := os.MkdirAll(ix.config.OutPath, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if err := ix.client.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	licenses, err := LoadLicenses(ctx, ix.client)
	if err != nil {
		return nil, err
	}
	ix.logger.DebugWithFields("licenses loaded", map[string]interface{}{
		"count": len(licenses),
	})

	for _, col := range ix.config.Queries {
		rows, err := ix.indexCollection(ctx, col, licenses)
		if err != nil {
			return nil, fmt.Errorf("collection %q: %w", col.Name, err)
		}
		summary.Collections++
		summary.Queries += len(col.Queries)
		summary.Rows += rows
	}

	summary.Duration = time.Since(start)
	logger.LogMetrics(ix.logger, "index", map[string]interface{}{
		"collections": summary.Collections,
		"queries":     summary.Queries,
		"rows":        summary.Rows,
		"duration":    summary.Duration,
	})

	return summary, nil
}

func (ix *Indexer) indexCollection(ctx context.Context, col config.Collection, licenses LicenseTable) (int, error) {
	log := ix.logger.WithField("collection", col.Name)

	dir, err := store.PrepareCollectionDir(ix.config.OutPath, col.Name)
	if err != nil {
		return 0, err
	}

	db, err := store.Open(ctx, filepath.Join(dir, store.DatabaseName))
	if err != nil {
		return 0, err
	}
	log = log.WithField("database", db.Path())

	rows, err := ix.runQueries(ctx, db, col, licenses, log)
	if closeErr := db.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return 0, err
	}

	written, err := WriteCredentialsPlaceholder(dir)
	if err != nil {
		return 0, err
	}
	if written {
		log.Info("Wrote credentials placeholder")
	}

	log.InfoWithFields("Collection indexed", map[string]interface{}{
		"queries": len(col.Queries),
		"rows":    rows,
	})
	return rows, nil
}

func (ix *Indexer) runQueries(ctx context.Context, db *store.Store, col config.Collection, licenses LicenseTable, log logger.Logger) (int, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	total := 0
	for i, spec := range col.Queries {
		photos, err := RunQuery(ctx, ix.client, spec)
		if err != nil {
			return 0, fmt.Errorf("query %d: %w", i+1, err)
		}

		rows, err := Materialize(photos, licenses, ix.config.Limit())
		if err != nil {
			return 0, fmt.Errorf("query %d: %w", i+1, err)
		}

		if err := db.Persist(ctx, rows); err != nil {
			return 0, fmt.Errorf("query %d: %w", i+1, err)
		}

		log.InfoWithFields("Query indexed", map[string]interface{}{
			"query": spec.String(),
			"rows":  len(rows),
		})
		total += len(rows)
	}

	return total, nil
}

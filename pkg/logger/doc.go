// Package logger provides the structured logging interface used across the
// indexer.
//
// It wraps zerolog behind a small Logger interface:
//   - pretty console output on stderr
//   - an optional rotating JSON log file (lumberjack) when logging.file is set
//   - WithField / WithFields / WithError for contextual fields
//   - TestLogger and NewNopLogger for tests
//
// Usage:
//
//	log, err := logger.New(&cfg.Logging)
//	if err != nil {
//	    return err
//	}
//	log.WithField("collection", "cats").Info("Collection indexed")
package logger

// Package store persists indexed photos, one SQLite database per collection.
//
// Each collection lives in its own directory under the output root:
//
//	{out_path}/{collection}/images.db
//
// The images table is append-only from the indexer's point of view: rows are
// inserted with INSERT OR IGNORE, so re-running a query never changes a row
// that is already there.
package store

// Package indexer runs configured Flickr searches and stores the results.
//
// For each collection in the configuration, in file order, the indexer
// opens {out_path}/{collection}/images.db and, for each query in the
// collection, searches Flickr, keeps at most result_limit photos that have a
// large image and stores them. Rows already present are left alone. The
// collection directory also gets an empty credentials file for the poster
// that consumes the table, unless one exists.
//
// The steps are exported separately: RunQuery starts a search, Materialize
// turns results into rows, and store.Store.Persist writes them.
package indexer

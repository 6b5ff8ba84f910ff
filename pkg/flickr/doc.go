// Package flickr is a small client for the Flickr REST API.
//
// Only the calls the indexer needs are covered: an echo round trip to check
// the key, the license list, group URL lookup and photo search. Search
// results are exposed as a lazy sequence that fetches one page per round
// trip as it is consumed:
//
//	client := flickr.NewClient(key, secret, 30*time.Second, log)
//	for photo, err := range client.Search(ctx, params.New("tags", "cat")) {
//	    if err != nil {
//	        return err
//	    }
//	    // use photo; breaking out stops further page fetches
//	}
//
// Remote failures are returned as *errors.Error from pkg/errors.
package flickr

// Package flickrtest provides an in-process fake of the Flickr REST API
// for tests.
package flickrtest

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Photo is a search result served by the fake
type Photo struct {
	ID      string
	Owner   string
	Title   string
	URLL    string
	License string
}

// Server answers the REST methods the indexer uses. Fields may be changed
// between calls but not while a request is in flight.
type Server struct {
	*httptest.Server

	APIKey    string
	APISecret string

	// Licenses maps license id to display name
	Licenses map[string]string
	// Groups maps group URLs to NSIDs
	Groups map[string]string
	// Photos is served by flickr.photos.search, paged by per_page
	Photos []Photo
	// Failures makes a method answer with stat=fail and the given code
	Failures map[string]int

	mu       sync.Mutex
	requests []url.Values
}

// NewServer starts a fake that accepts key/secret and shuts down with the test
func NewServer(t testing.TB, key, secret string) *Server {
	t.Helper()

	s := &Server{
		APIKey:    key,
		APISecret: secret,
		Licenses:  map[string]string{},
		Groups:    map[string]string{},
		Failures:  map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Requests returns the query of every request made for method, in order
func (s *Server) Requests(method string) []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []url.Values
	for _, q := range s.requests {
		if q.Get("method") == method {
			out = append(out, q)
		}
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	s.requests = append(s.requests, q)
	s.mu.Unlock()

	if q.Get("format") != "json" || q.Get("nojsoncallback") != "1" {
		http.Error(w, "jsonp not supported", http.StatusBadRequest)
		return
	}
	if q.Get("api_key") != s.APIKey {
		fail(w, 100, "Invalid API Key (Key not found)")
		return
	}
	if s.APISecret != "" && q.Get("api_sig") != Signature(s.APISecret, q) {
		fail(w, 96, "Invalid signature")
		return
	}

	method := q.Get("method")
	if code, ok := s.Failures[method]; ok {
		fail(w, code, "forced failure")
		return
	}

	switch method {
	case "flickr.test.echo":
		ok(w, map[string]interface{}{"method": map[string]string{"_content": method}})
	case "flickr.photos.licenses.getInfo":
		s.licenses(w)
	case "flickr.urls.lookupGroup":
		id, found := s.Groups[q.Get("url")]
		if !found {
			fail(w, 1, "Group not found")
			return
		}
		ok(w, map[string]interface{}{"group": map[string]interface{}{"id": id}})
	case "flickr.photos.search":
		s.search(w, q)
	default:
		fail(w, 112, "Method \""+method+"\" not found")
	}
}

func (s *Server) licenses(w http.ResponseWriter) {
	ids := make([]string, 0, len(s.Licenses))
	for id := range s.Licenses {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		entry := map[string]interface{}{"name": s.Licenses[id], "url": ""}
		// Flickr sends numeric ids here
		if n, err := strconv.Atoi(id); err == nil {
			entry["id"] = n
		} else {
			entry["id"] = id
		}
		list = append(list, entry)
	}
	ok(w, map[string]interface{}{"licenses": map[string]interface{}{"license": list}})
}

func (s *Server) search(w http.ResponseWriter, q url.Values) {
	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || perPage <= 0 {
		perPage = 100
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	total := len(s.Photos)
	pages := (total + perPage - 1) / perPage

	photos := []map[string]interface{}{}
	for i := (page - 1) * perPage; i < total && i < page*perPage; i++ {
		p := s.Photos[i]
		entry := map[string]interface{}{
			"id":      p.ID,
			"owner":   p.Owner,
			"title":   p.Title,
			"license": p.License,
		}
		if p.URLL != "" {
			entry["url_l"] = p.URLL
		}
		photos = append(photos, entry)
	}

	ok(w, map[string]interface{}{"photos": map[string]interface{}{
		"page":    page,
		"pages":   pages,
		"perpage": perPage,
		"total":   strconv.Itoa(total),
		"photo":   photos,
	}})
}

// Signature computes the api_sig Flickr expects for q
func Signature(secret string, q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		if k != "api_sig" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(secret)
	for _, k := range keys {
		b.WriteString(k + q.Get(k))
	}
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func ok(w http.ResponseWriter, body map[string]interface{}) {
	body["stat"] = "ok"
	writeJSON(w, body)
}

func fail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, map[string]interface{}{"stat": "fail", "code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

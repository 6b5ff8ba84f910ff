package flickr

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"flickrindexer/pkg/errors"
	"flickrindexer/pkg/logger"
	"flickrindexer/pkg/params"
	"flickrindexer/pkg/ratelimit"
)

const userAgent = "flickr-indexer/1.0"

// Client talks to the Flickr REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
	limiter    ratelimit.Limiter
	logger     logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL points the client at another endpoint, mostly for tests
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithLimiter paces every call through limiter
func WithLimiter(limiter ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = limiter }
}

// NewClient creates a new Flickr API client. Requests are signed when
// apiSecret is not empty.
func NewClient(apiKey, apiSecret string, timeout time.Duration, log logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   BaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		limiter:   ratelimit.Unlimited(),
		logger:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate checks that Flickr accepts the configured key
func (c *Client) Authenticate(ctx context.Context) error {
	if c.apiKey == "" {
		return errors.New(errors.ErrorTypeAuth, 0, "api key is empty")
	}

	var resp json.RawMessage
	if err := c.call(ctx, MethodEcho, params.Params{}, &resp); err != nil {
		return err
	}

	c.logger.Debug("API key accepted")
	return nil
}

// Licenses returns the license list in the order Flickr reports it
func (c *Client) Licenses(ctx context.Context) ([]License, error) {
	var resp licensesResponse
	if err := c.call(ctx, MethodLicenses, params.Params{}, &resp); err != nil {
		return nil, err
	}

	licenses := make([]License, 0, len(resp.Licenses.License))
	for _, l := range resp.Licenses.License {
		licenses = append(licenses, License{ID: string(l.ID), Name: l.Name, URL: l.URL})
	}
	return licenses, nil
}

// LookupGroup resolves a group URL to its NSID
func (c *Client) LookupGroup(ctx context.Context, groupURL string) (string, error) {
	var resp lookupGroupResponse
	if err := c.call(ctx, MethodLookupGroup, params.New("url", groupURL), &resp); err != nil {
		return "", err
	}

	if resp.Group.ID == "" {
		return "", errors.New(errors.ErrorTypeNotFound, 0, "no group id for %s", groupURL)
	}
	return resp.Group.ID, nil
}

// SearchPage fetches a single page of flickr.photos.search results
func (c *Client) SearchPage(ctx context.Context, args params.Params, page int) (*PhotosPage, error) {
	args = args.Clone()
	args.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.call(ctx, MethodSearch, args, &resp); err != nil {
		return nil, err
	}

	p := resp.Photos
	c.logger.DebugWithFields("search page fetched", map[string]interface{}{
		"page":   int(p.Page),
		"pages":  int(p.Pages),
		"photos": len(p.Photo),
	})

	return &PhotosPage{
		Page:    int(p.Page),
		Pages:   int(p.Pages),
		PerPage: int(p.PerPage),
		Total:   int(p.Total),
		Photos:  p.Photo,
	}, nil
}

// Search returns the results of flickr.photos.search as a lazy sequence.
// Pages are fetched as the sequence is consumed; stopping early fetches
// nothing further. A failed page is yielded as an error and ends the
// sequence. Each call starts again from page 1.
func (c *Client) Search(ctx context.Context, args params.Params) iter.Seq2[Photo, error] {
	args = args.Clone()

	return func(yield func(Photo, error) bool) {
		for page := 1; ; page++ {
			result, err := c.SearchPage(ctx, args, page)
			if err != nil {
				yield(Photo{}, err)
				return
			}

			for _, photo := range result.Photos {
				if !yield(photo, nil) {
					return
				}
			}

			if len(result.Photos) == 0 || page >= result.Pages {
				return
			}
		}
	}
}

// call performs one REST method and decodes the response into target
func (c *Client) call(ctx context.Context, method string, args params.Params, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL, err := c.buildURL(method, args)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.New(errors.ErrorTypeUnknown, 0, "failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doRequest(req, method)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp, method); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.New(errors.ErrorTypeNetwork, resp.StatusCode, "failed to read response body: %v", err)
	}

	return c.decode(method, body, target)
}

func (c *Client) buildURL(method string, args params.Params) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.New(errors.ErrorTypeUnknown, 0, "invalid base url %q: %v", c.baseURL, err)
	}

	values := args.Values()
	values.Set("method", method)
	values.Set("api_key", c.apiKey)
	values.Set("format", "json")
	values.Set("nojsoncallback", "1")
	if c.apiSecret != "" {
		values.Set("api_sig", sign(c.apiSecret, values))
	}

	base.RawQuery = values.Encode()
	return base.String(), nil
}

// sign computes api_sig: md5 of the secret followed by every key and value
// in key order
func sign(secret string, values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "api_sig" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(secret)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(values.Get(k))
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (c *Client) doRequest(req *http.Request, method string) (*http.Response, error) {
	start := time.Now()
	c.logger.DebugWithFields("sending API request", map[string]interface{}{
		"method": method,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.ErrorWithFields("API request failed", map[string]interface{}{
			"method":   method,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.New(errors.ErrorTypeNetwork, 0, "network error: %v", err)
	}

	c.logger.DebugWithFields("API request completed", map[string]interface{}{
		"method":   method,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// checkResponseStatus maps non-200 HTTP statuses to typed errors
func (c *Client) checkResponseStatus(resp *http.Response, method string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	errType := errors.TypeForStatusCode(resp.StatusCode)
	c.logger.WarnWithFields("unexpected API status", map[string]interface{}{
		"method": method,
		"status": resp.StatusCode,
		"type":   string(errType),
	})
	return errors.New(errType, resp.StatusCode, "%s returned status %d", method, resp.StatusCode)
}

func (c *Client) decode(method string, body []byte, target interface{}) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"method":       method,
			"error":        err.Error(),
			"body_preview": preview(body),
		})
		return errors.New(errors.ErrorTypeParsing, 0, "failed to parse %s response: %v", method, err)
	}

	switch env.Stat {
	case "ok":
	case "":
		return errors.New(errors.ErrorTypeParsing, 0, "%s response has no stat field", method)
	default:
		c.logger.WarnWithFields("API call failed", map[string]interface{}{
			"method":  method,
			"code":    env.Code,
			"message": env.Message,
		})
		return errors.New(errors.TypeForAPICode(env.Code), env.Code, "%s: %s", method, env.Message)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.New(errors.ErrorTypeParsing, 0, "failed to decode %s response: %v", method, err)
	}
	return nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

// String describes the client without leaking credentials
func (c *Client) String() string {
	return fmt.Sprintf("flickr.Client{base=%s signed=%t}", c.baseURL, c.apiSecret != "")
}

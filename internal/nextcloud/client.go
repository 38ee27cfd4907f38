// Package nextcloud implements clients for the Nextcloud APIs that nextmcp
// exposes as tools: the Notes REST API, the Tables REST API, and the DAV
// endpoints for calendars, contacts and files.
package nextcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

const (
	notesAPIPath  = "/index.php/apps/notes/api/v1"
	tablesAPIPath = "/index.php/apps/tables/api/1"
	davPath       = "/remote.php/dav"
)

// default outgoing request rate.  Nextcloud instances behind brute force
// protection start throttling at roughly 30 requests per second.
const (
	defRateLimit = rate.Limit(10)
	defBurst     = 5
)

// Client is an authenticated client for a single Nextcloud instance.  It is
// safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	username string
	password string

	cl  *http.Client
	lim *rate.Limiter
	lg  *slog.Logger
}

// Option is a functional option for New.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *Client) {
		if cl != nil {
			c.cl = cl
		}
	}
}

// WithLogger sets the logger.  A nil logger falls back to slog.Default.
func WithLogger(lg *slog.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.lg = lg
		}
	}
}

// WithLimiter overrides the outgoing request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		if l != nil {
			c.lim = l
		}
	}
}

// New creates a new Client for the Nextcloud instance at host.  host must
// include the scheme, i.e. "https://cloud.example.com".  username and
// password are used for Basic authentication; an app password is accepted in
// place of the account password.
func New(host, username, password string, opt ...Option) (*Client, error) {
	if host == "" {
		return nil, fmt.Errorf("host is empty")
	}
	if username == "" {
		return nil, fmt.Errorf("username is empty")
	}
	u, err := url.Parse(strings.TrimRight(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid host %q: %w", host, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid host %q: scheme must be http or https", host)
	}
	c := &Client{
		baseURL:  u,
		username: username,
		password: password,
		cl:       http.DefaultClient,
		lim:      rate.NewLimiter(defRateLimit, defBurst),
		lg:       slog.Default(),
	}
	for _, o := range opt {
		o(c)
	}
	return c, nil
}

// Username returns the configured account name.  DAV paths are scoped by it.
func (c *Client) Username() string {
	return c.username
}

// Host returns the base URL of the instance.
func (c *Client) Host() string {
	return c.baseURL.String()
}

// do issues an authenticated request to path (relative to the instance base
// URL) and returns the raw response.  Network failures are wrapped in
// TransportError; HTTP status codes are not examined here.
func (c *Client) do(ctx context.Context, method, path string, header http.Header, body io.Reader) (*http.Response, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, err
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	req.SetBasicAuth(c.username, c.password)
	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	return resp, nil
}

// checkStatus maps an unexpected HTTP status to the error taxonomy.  ok lists
// the statuses that the caller considers successful.  On error the response
// body is drained and closed.
func checkStatus(resp *http.Response, op string, ok ...int) error {
	for _, code := range ok {
		if resp.StatusCode == code {
			return nil
		}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
	}()
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Err: fmt.Errorf("%s: server returned %s", op, resp.Status)}
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return &StatusError{Code: resp.StatusCode, Op: op}
	}
}

// getJSON issues a GET request and decodes the JSON response body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, jsonHeader(), nil)
	if err != nil {
		return err
	}
	if err := checkStatus(resp, "GET "+path, http.StatusOK); err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// sendJSON marshals body and issues a method request, decoding the response
// into v if v is not nil.  extra headers are added to the request.
func (c *Client) sendJSON(ctx context.Context, method, path string, extra http.Header, body any, v any, ok ...int) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s %s: marshal: %w", method, path, err)
	}
	hdr := jsonHeader()
	hdr.Set("Content-Type", "application/json")
	for k, vv := range extra {
		for _, hv := range vv {
			hdr.Add(k, hv)
		}
	}
	resp, err := c.do(ctx, method, path, hdr, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if err := checkStatus(resp, method+" "+path, ok...); err != nil {
		return err
	}
	defer resp.Body.Close()
	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

func jsonHeader() http.Header {
	h := make(http.Header)
	h.Set("Accept", "application/json")
	return h
}

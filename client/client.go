package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/fbradyirl/openwebif-go/tool"
	"github.com/fbradyirl/openwebif-go/types"
)

const (
	// DefaultPort is the port OpenWebif listens on out of the box.
	DefaultPort = 80

	// Boxes drop remote-control keypresses that arrive back-to-back, so
	// keypress commands share a limiter.
	defaultKeyRate  = 4
	defaultKeyBurst = 4

	// How long a picon URL verified via HEAD stays trusted.
	piconCacheTTL = 30 * time.Minute
)

// Client talks to one OpenWebif box. The connection configuration is
// immutable after New; the only internal mutable state is the picon URL
// existence cache and the keypress limiter, both safe for concurrent use.
type Client struct {
	base     *url.URL
	username string
	password string
	http     *http.Client
	log      *log.Logger

	keys      *rate.Limiter
	piconSeen *ttlworker.Cache[string, bool]

	scheme      string
	port        int
	timeout     time.Duration
	preferPicon bool
	mac         string
	deepStandby bool
}

// Option configures a Client during construction.
type Option func(*Client)

// WithPort overrides the OpenWebif port (default 80).
func WithPort(port int) Option {
	return func(c *Client) { c.port = port }
}

// WithHTTPS switches the client to https. Certificate verification is
// skipped because boxes serve self-signed certificates.
func WithHTTPS() Option {
	return func(c *Client) { c.scheme = "https" }
}

// WithCredentials sets HTTP basic auth credentials.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger replaces the package default logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// WithPreferPicon makes PiconURL try channel picons before falling back to
// a screen grab.
func WithPreferPicon() Option {
	return func(c *Client) { c.preferPicon = true }
}

// WithMACAddress sets the MAC used for wake-on-LAN. Without it WakeUp
// fails and TurnOn never sends a magic packet.
func WithMACAddress(mac string) Option {
	return func(c *Client) { c.mac = mac }
}

// WithDeepStandby makes TurnOff put the box into deep standby instead of
// normal standby.
func WithDeepStandby() Option {
	return func(c *Client) { c.deepStandby = true }
}

// New creates a client for the box at host. Host is required; everything
// else has defaults. New performs no I/O.
func New(host string, opts ...Option) (*Client, error) {
	c := &Client{
		log:       tool.DefaultLogger,
		keys:      rate.NewLimiter(defaultKeyRate, defaultKeyBurst),
		piconSeen: ttlworker.NewCache[string, bool](piconCacheTTL),
		scheme:    "http",
		port:      DefaultPort,
	}
	for _, opt := range opts {
		opt(c)
	}

	base, err := tool.BuildBaseURL(c.scheme, host, c.port)
	if err != nil {
		return nil, err
	}
	c.base = base

	if c.http == nil {
		c.http = tool.NewHTTPClient(c.timeout)
	}
	return c, nil
}

// WebURL returns the root URL of the box web interface.
func (c *Client) WebURL() string {
	return c.base.String()
}

// get performs one GET round trip and decodes the JSON body into dest.
// A nil dest skips decoding; only the status code is checked then.
func (c *Client) get(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &ConnError{URL: rawURL, Err: err}
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debugf("GET %s", rawURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return &ConnError{URL: rawURL, Status: resp.StatusCode,
			Err: errors.New("authentication failed, check your username and password")}
	case http.StatusNotFound:
		return &ConnError{URL: rawURL, Status: resp.StatusCode,
			Err: errors.New("endpoint not found, is the OpenWebif plugin installed?")}
	default:
		return &ConnError{URL: rawURL, Status: resp.StatusCode,
			Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnError{URL: rawURL, Err: err}
	}
	if err := sonic.Unmarshal(body, dest); err != nil {
		return &ParseError{URL: rawURL, Err: err}
	}
	return nil
}

// command performs a GET and returns the box's boolean acknowledgement.
func (c *Client) command(ctx context.Context, rawURL string) (bool, error) {
	var result types.CommandResult
	if err := c.get(ctx, rawURL, &result); err != nil {
		return false, err
	}
	return result.Result, nil
}

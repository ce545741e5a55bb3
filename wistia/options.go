package wistia

import (
	"net/http"
	"time"
)

// DebugLevel controls how much the client logs about its requests
type DebugLevel int

const (
	// DebugNone logs nothing except warnings
	DebugNone DebugLevel = iota
	// DebugBasic logs each request description, its URL and result counts
	DebugBasic
	// DebugVerbose also logs status codes, payload sizes and dropped items
	DebugVerbose
)

// ParseDebugLevel accepts none/basic/verbose and the older some/annoying names
func ParseDebugLevel(s string) (DebugLevel, bool) {
	switch s {
	case "", "none", "off":
		return DebugNone, true
	case "basic", "some":
		return DebugBasic, true
	case "verbose", "annoying", "all":
		return DebugVerbose, true
	default:
		return DebugNone, false
	}
}

// String returns the level name
func (l DebugLevel) String() string {
	switch l {
	case DebugBasic:
		return "basic"
	case DebugVerbose:
		return "verbose"
	default:
		return "none"
	}
}

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	userAgent    string
	debug        DebugLevel
	strictStatus bool
	perPage      int
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL(),
		timeout:   30 * time.Second,
		userAgent: "wistiakit",
		perPage:   DefaultPerPage,
	}
}

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client. Its timeout takes precedence over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithDebugLevel sets the request logging verbosity.
func WithDebugLevel(level DebugLevel) Option {
	return func(o *clientOptions) {
		o.debug = level
	}
}

// WithStrictStatus makes every non-200 status an *APIError instead of an
// empty result.
func WithStrictStatus() Option {
	return func(o *clientOptions) {
		o.strictStatus = true
	}
}

// WithPageSize sets the per_page value used when ListOptions leaves it unset.
func WithPageSize(size int) Option {
	return func(o *clientOptions) {
		if size > 0 {
			o.perPage = size
		}
	}
}

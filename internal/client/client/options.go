package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/logging"
)

// Option configures an HTTPClient in New. Options run before the bearer and
// metrics wrappers are installed, so transports added here sit underneath
// them.
type Option func(*HTTPClient) error

// WithHTTPTimeout bounds every request, connection setup and body included.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *HTTPClient) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithTransport replaces the base round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) error {
		if rt == nil {
			return fmt.Errorf("transport must not be nil")
		}
		c.http.Transport = rt
		return nil
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) error {
		if l != nil {
			c.log = l
		}
		return nil
	}
}

// WithDebugLogging dumps each request and response to the logger at debug
// level. Dumps include headers, so the bearer token ends up in the log.
func WithDebugLogging(enabled bool) Option {
	return func(c *HTTPClient) error {
		c.debug = enabled
		return nil
	}
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/docdesk/internal/logging"
)

// HTTPClient talks to the document-management REST API.
type HTTPClient struct {
	serverURL *url.URL
	apiURL    string
	http      *http.Client
	metrics   *clientMetrics
	log       logging.Logger
	debug     bool

	mu    sync.RWMutex
	token string
}

// New builds a client for the API mounted at apiPrefix on serverURL,
// e.g. New("http://127.0.0.1:8000", "/api/v1").
func New(serverURL, apiPrefix string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", serverURL)
	}

	prefix := "/" + strings.Trim(apiPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}

	c := &HTTPClient{
		serverURL: u,
		apiURL:    u.String() + prefix,
		http:      &http.Client{Timeout: 30 * time.Second},
		metrics:   newClientMetrics(),
		log:       logging.Discard(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, log: c.log}
	}
	c.http.Transport = &bearerTransport{
		base:  c.metrics.instrument(base),
		token: c.currentToken,
	}

	return c, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) HasToken() bool {
	return c.currentToken() != ""
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Metrics exposes the request counters of this client.
func (c *HTTPClient) Metrics() prometheus.Gatherer {
	return c.metrics.registry
}

// ResolveURL turns a server-relative reference such as
// "/uploads/1.jpg" into an absolute URL. Absolute references and "" are
// returned unchanged.
func (c *HTTPClient) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	return c.serverURL.ResolveReference(r).String()
}

func (c *HTTPClient) endpoint(parts ...string) string {
	return c.apiURL + path.Join(append([]string{"/"}, parts...)...)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp)
		c.log.Debug(req.Context(), "api request rejected",
			"method", req.Method, "url", req.URL.Path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// doMultipart streams r as the "file" field of a multipart form.
func (c *HTTPClient) doMultipart(ctx context.Context, target, name, contentType string, r io.Reader, out any) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		_ = pr.Close()
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	go func() {
		pw.CloseWithError(writeFilePart(mw, name, contentType, r))
	}()

	return c.send(req, out)
}

func writeFilePart(mw *multipart.Writer, name, contentType string, r io.Reader) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(path.Base(name))))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}

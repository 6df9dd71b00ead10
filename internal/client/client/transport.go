package client

import (
	"context"
	"net/http"
	"net/http/httputil"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docdesk/internal/common"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

type tokenKey struct{}

// WithToken makes requests issued with ctx carry token instead of the
// client's installed one. The session uses it to confirm a token before
// committing to it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext reports the token set by WithToken, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok
}

// bearerTransport stamps the current token and a fresh request id onto a
// clone of every outgoing request.
type bearerTransport struct {
	base  http.RoundTripper
	token func() string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())

	tok, ok := TokenFromContext(req.Context())
	if !ok {
		tok = t.token()
	}
	if tok != "" {
		cloned.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
	} else {
		cloned.Header.Del(common.AuthorizationHeader)
	}
	if cloned.Header.Get(common.RequestIDHeader) == "" {
		cloned.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	return t.base.RoundTrip(cloned)
}

type debugTransport struct {
	base http.RoundTripper
	log  logging.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// Multipart uploads are streamed; dumping them would drain the pipe.
	dumpBody := req.ContentLength > 0
	if dump, err := httputil.DumpRequestOut(req, dumpBody); err == nil {
		dt.log.Debug(ctx, "http request", "method", req.Method, "url", req.URL.String(), "dump", string(dump))
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.log.Debug(ctx, "http request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.log.Debug(ctx, "http response", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "dump", string(dump))
	}
	return resp, nil
}

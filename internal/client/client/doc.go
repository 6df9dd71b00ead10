// Package client is the REST transport of the docdesk command-line client.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface) covering authentication,
//     documents, the question-answering search, user profiles, the dashboard
//     and a health probe.
//  2. HTTPClient, the net/http implementation. It attaches the bearer token
//     and an X-Request-ID to every request, counts requests per method and
//     status code, and optionally dumps traffic to the debug log.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are returned as
// *APIError; 401 responses also match ErrUnauthorized and 403 responses
// ErrForbidden via errors.Is. Message extracts the server's detail text for
// display.
//
// HTTPClient is safe for concurrent use. The token may be swapped while
// requests are in flight; each request sees either the old or the new one.
package client

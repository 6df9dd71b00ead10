// Package session holds the signed-in identity of the docdesk client.
//
// A Store is built once at start-up and handed to the shell and to every
// view that needs the current user. It is the only writer of three pieces of
// state that must agree with each other: the persisted access token, the
// token installed on the API client, and the in-memory user. All three
// change together in a single transition.
//
// Lifecycle:
//
//	Loading --Initialize--> Anonymous | Authenticated
//	Anonymous --Login/Register--> Authenticated
//	Authenticated --Logout/Expire--> Anonymous
package session

// Package views holds the screen state of the docdesk client: the
// documents list, the question-answering search, the profile editor, the
// dashboard and the sign-in forms.
//
// Views fetch their own data through narrow API interfaces and never touch
// the session's token; the only session mutation they perform is
// UpdateUser after a profile save. Validation failures are returned as
// sentinel errors before any request is made. Failed requests come back as
// *Failure, whose message is what the user should see and which unwraps to
// the transport error (so errors.Is(err, client.ErrUnauthorized) still
// works).
package views

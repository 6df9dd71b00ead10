// Package cli provides the interactive docdesk shell.
//
// It wires configuration, the local state file, the REST client, the
// session store and the views behind a REPL. Typical flow: resolve the
// persisted session, show the dashboard (or the login form when signed
// out), start a background connectivity watcher and execute user commands.
//
// Every page command goes through the route gate, so a signed-out user
// asking for documents is shown the login form instead, and a signed-in
// user asking for the login page lands on the dashboard. A 401 from any
// request ends the session.
//
// The shell is started via App.Run(ctx), which blocks until the user exits.
// See App, Navigate, StartOnlineStatusWatcher and runREPL for details.
package cli

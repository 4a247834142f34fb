// Package cli provides the interactive moviecat command-line client.
//
// It wires configuration, the local session database, the API gateway, the
// services and the views, and drives them from a REPL. Each route of the
// client is a view; commands navigate between them and feed them input.
//
// Key features:
//   - Session restored at startup (trusting a cached identity or asking the service)
//   - Login / Register / Logout
//   - Catalogue listing with admin add, edit and delete
//   - Movie details with comments
//   - Background connectivity watcher shown in the prompt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

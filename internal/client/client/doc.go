// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract of the remote movie service (see the
//     Client interface): login, user details, registration, movie CRUD and
//     comments.
//  2. A concrete REST/JSON implementation (see HTTPClient) built around one
//     uniform Call: it attaches the bearer credential read fresh from a
//     TokenSource, encodes JSON bodies, decodes JSON answers, and turns
//     non-2xx statuses and transport failures into *APIError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite session store and its embedded goose migrations.
//
// # Error Handling
//
// *APIError matches the sentinels ErrUnavailable, ErrUnauthorized,
// ErrNotFound and ErrBadRequest via errors.Is; a body that cannot be decoded
// additionally matches ErrMalformedResponse.
//
// The gateway never reads or writes the session store itself.
package client

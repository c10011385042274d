// Package client contains the transport layer of the CommunityHub client.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): one method per backend
//     operation, each performing exactly one HTTP round trip.
//  2. A concrete implementation over net/http (see HTTPClient) that attaches
//     the credential header and a request id, encodes form and multipart
//     bodies, and rewrites image paths to absolute URLs.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failure is an *APIError whose Error() is a single human-readable
// message, so callers can show it without branching on its shape. The
// failure class is still available through errors.Is with ErrValidation,
// ErrUnauthorized, ErrForbidden, ErrNotFound, ErrUnavailable or ErrServer.
// Message extracts the display string from any error.
//
// There are no retries: a failed call is reported once.
package client

// Package api contains the HTTP handlers dashboard consumers poll for
// per-user and field-level analytics, plus the shared request/response
// helpers and middleware they depend on.
package api

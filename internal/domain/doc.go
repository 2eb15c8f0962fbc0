// Package domain contains the core types of the symbolic analytics engine:
// journal entries with their analyzer-produced annotations, and the derived
// per-user and field-level summary structures.
//
// All derived structures are ephemeral. They are recomputed on every
// aggregation call and hold no ownership over entries; nothing in this
// package is persisted by the engine itself.
package domain

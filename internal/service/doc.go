// Package service orchestrates the symbolic analytics engine: it reads
// entry snapshots through the store layer, invokes the pure aggregators
// and caches per-user results by entry-set revision so dashboard polling
// does not recompute unchanged input.
package service

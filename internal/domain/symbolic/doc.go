// Package symbolic implements the symbolic analytics engine: the per-user
// aggregator, the trend classifier, the insight synthesizer and the
// collective (field-level) aggregator.
//
// Every function in this package is a synchronous, stateless, pure function
// over an immutable input snapshot. The reference time is always passed in
// explicitly, so repeated calls with the same entries and the same "now"
// produce structurally identical output, including list ordering. Callers
// may therefore invoke the engine concurrently without coordination.
package symbolic

// Package store defines the persistence interfaces the analytics engine
// reads through. The entry store is an external collaborator: this engine
// never writes entries, it only consumes ordered snapshots of them.
package store

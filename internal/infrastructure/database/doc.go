// Package database manages the SQLite connection for VRISA Core.
//
// It provides connection lifecycle management (WAL mode, busy timeout,
// enforced foreign keys for cascade deletion) and an embedded-migration
// runner. Migration SQL files live in the top-level migrations package and
// are compiled into the binary.
package database

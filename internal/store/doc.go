// Package store persists batch runs and their results in PostgreSQL.
//
// A run is one invocation of the batch command. Each validated document
// becomes a row in ddexcheck_results, keyed by a random UUID and linked to
// its run. The document_id column is the deterministic identity of the file
// path, so the history of one file can be queried across runs.
//
// All writes of a run happen in a single transaction, retried as a whole on
// transient PostgreSQL errors.
package store

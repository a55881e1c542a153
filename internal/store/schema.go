package store

// migrations run in order inside one transaction. Every statement is
// idempotent so Migrate can run on each start.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ddexcheck_runs (
		id          uuid PRIMARY KEY,
		started_at  timestamptz NOT NULL,
		finished_at timestamptz NOT NULL,
		total       integer NOT NULL,
		valid       integer NOT NULL,
		invalid     integer NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ddexcheck_results (
		id            uuid PRIMARY KEY,
		run_id        uuid NOT NULL REFERENCES ddexcheck_runs(id) ON DELETE CASCADE,
		document_id   uuid NOT NULL,
		file_path     text NOT NULL,
		checksum      text NOT NULL,
		message_type  text NOT NULL,
		version       text NOT NULL,
		valid         boolean NOT NULL,
		errors        integer NOT NULL,
		warnings      integer NOT NULL,
		issues        jsonb NOT NULL,
		validated_at  timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ddexcheck_results_run_idx ON ddexcheck_results (run_id)`,
	`CREATE INDEX IF NOT EXISTS ddexcheck_results_document_idx ON ddexcheck_results (document_id, validated_at DESC)`,
}

const insertRun = `INSERT INTO ddexcheck_runs (id, started_at, finished_at, total, valid, invalid)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertResult = `INSERT INTO ddexcheck_results
	(id, run_id, document_id, file_path, checksum, message_type, version, valid, errors, warnings, issues, validated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const selectRun = `SELECT id, started_at, finished_at, total, valid, invalid
FROM ddexcheck_runs WHERE id = $1`

const selectResults = `SELECT document_id, file_path, checksum, message_type, version, valid, errors, warnings, issues
FROM ddexcheck_results WHERE run_id = $1 ORDER BY file_path`

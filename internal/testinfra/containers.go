// Package testinfra starts throwaway infrastructure for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "ddexcheck"
	PostgresPassword = "ddexcheck"
	PostgresDB       = "ddexcheck"

	// DSNEnv points tests at an existing server instead of a container.
	DSNEnv = "DDEXCHECK_TEST_DSN"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// StartPostgres runs a disposable PostgreSQL server. Callers must Terminate
// the returned container.
func StartPostgres(ctx context.Context) (pc *PostgresContainer, err error) {
	// testcontainers panics when no container runtime can be found.
	defer func() {
		if r := recover(); r != nil {
			pc, err = nil, fmt.Errorf("start postgres: no container runtime: %v", r)
		}
	}()

	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

// PostgresDSN returns DDEXCHECK_TEST_DSN when set, otherwise starts a
// container. The cleanup function is never nil.
func PostgresDSN(ctx context.Context) (string, func(), error) {
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn, func() {}, nil
	}
	ctr, err := StartPostgres(ctx)
	if err != nil {
		return "", func() {}, err
	}
	return ctr.ConnString, func() { ctr.Terminate(context.Background()) }, nil //nolint:errcheck
}

// RequirePostgres returns a DSN for an empty test database, or skips t in
// short mode and when neither DDEXCHECK_TEST_DSN nor a healthy container
// runtime is available.
func RequirePostgres(t *testing.T, ctx context.Context) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	if dsn := os.Getenv(DSNEnv); dsn != "" {
		return dsn
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)
	dsn, cleanup, err := PostgresDSN(ctx)
	if err != nil {
		t.Skipf("PostgreSQL not available (set %s or start Docker): %v", DSNEnv, err)
	}
	t.Cleanup(cleanup)
	return dsn
}

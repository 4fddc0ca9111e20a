// Package containers runs the throwaway Postgres used by the integration tests.
package containers

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "league_page"
	dbUser     = "leagueuser"
	dbPassword = "secret"
)

// SchemaPath is the schema applied to new containers. Tests run from a
// package directory, so by default it is one level up. SCHEMA_PATH overrides it.
func SchemaPath() string {
	if p := os.Getenv("SCHEMA_PATH"); p != "" {
		return p
	}
	return filepath.Join("..", "schema", "schema.sql")
}

type DBContainer struct {
	container  *postgres.PostgresContainer
	connString string
}

// NewDBContainer starts Postgres with the manager_profiles schema applied.
func NewDBContainer() *DBContainer {
	ctx := context.Background()

	schema := SchemaPath()
	if _, err := os.Stat(schema); err != nil {
		log.Fatalf("error finding schema: %v", err)
	}

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(schema),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		log.Fatalf("error starting container: %v", err)
	}

	// explicitly set sslmode=disable because the container is not configured to use TLS
	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("error getting connection string: %v", err)
	}

	return &DBContainer{
		container:  container,
		connString: connString,
	}
}

func (c *DBContainer) Shutdown() {
	err := c.container.Terminate(context.Background())
	if err != nil {
		log.Fatalf("error terminating container: %v", err)
	}
}

func (c *DBContainer) ConnectionString() string {
	return c.connString
}

// Reset removes every manager profile so a test starts from an empty table.
func (c *DBContainer) Reset(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, c.connString)
	if err != nil {
		return fmt.Errorf("error connecting to reset db: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "TRUNCATE manager_profiles"); err != nil {
		return fmt.Errorf("error truncating manager_profiles: %w", err)
	}
	return nil
}

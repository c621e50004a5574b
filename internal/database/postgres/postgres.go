package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/jayanth2212/AgriSure/internal/config"
)

// ConnectAndCreateDB connects to PostgreSQL, creating the engine
// database and bootstrapping the schema on first run.
func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	defaultConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	defaultDB, err := sql.Open("postgres", defaultConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}
	if !exists {
		if _, err := defaultDB.Exec(fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		slog.Info("database created", "name", cfg.DBname)
	}

	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)
	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if !exists {
		if err := executeSchema(db, cfg.SchemaPath); err != nil {
			// Leave the connection usable; the schema can be applied
			// manually when the file is not shipped with the binary.
			slog.Warn("failed to execute schema", "path", cfg.SchemaPath, "error", err)
		}
	}
	return db, nil
}

// RetryConnectOnFailed retries the connection until it succeeds, for
// deployments where the database comes up after the engine. It blocks
// the caller; *db is replaced once a connection is established.
func RetryConnectOnFailed(interval time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	for {
		time.Sleep(interval)
		conn, err := ConnectAndCreateDB(cfg)
		if err != nil {
			slog.Error("database reconnect failed", "error", err)
			continue
		}
		*db = conn
		slog.Info("database connection established")
		return
	}
}

func executeSchema(db *sqlx.DB, path string) error {
	if path == "" {
		path = "schema.sql"
	}
	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	slog.Info("schema applied", "path", path)
	return nil
}

package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"mcq-checker/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrations holds the schema files shipped with the binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that holds the files.
const MigrationsDir = "migrations"

// Execer is satisfied by *sql.DB, *sqlx.DB and their transactions.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// RunMigrations applies every up migration in version order, or every down
// migration in reverse order when down is set. Files are read through
// golang-migrate's iofs source, so names follow its
// <version>_<title>.<up|down>.sql convention.
func RunMigrations(ctx context.Context, db Execer, fsys fs.FS, dir string, down bool) error {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("could not open migrations in %s: %w", dir, err)
	}
	defer src.Close()

	versions, err := listVersions(src)
	if err != nil {
		return err
	}
	if down {
		for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
			versions[i], versions[j] = versions[j], versions[i]
		}
	}

	for _, version := range versions {
		var (
			r     io.ReadCloser
			ident string
		)
		if down {
			r, ident, err = src.ReadDown(version)
		} else {
			r, ident, err = src.ReadUp(version)
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not read migration %d: %w", version, err)
		}

		body, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return fmt.Errorf("could not read migration %d: %w", version, err)
		}

		for _, stmt := range splitStatements(string(body)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %d_%s: %w", version, ident, err)
			}
		}

		logger.Get().Info("Executed migration",
			zap.Uint("version", version),
			zap.String("name", ident),
			zap.Bool("down", down),
		)
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("count", len(versions)))
	return nil
}

func listVersions(src source.Driver) ([]uint, error) {
	version, err := src.First()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read first migration: %w", err)
	}

	versions := []uint{version}
	for {
		next, err := src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			return versions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("could not read migration after %d: %w", version, err)
		}
		versions = append(versions, next)
		version = next
	}
}

// splitStatements splits a migration file on ';'. Oracle rejects a trailing
// semicolon on a single statement, so none is kept.
func splitStatements(body string) []string {
	var stmts []string
	for _, part := range strings.Split(body, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

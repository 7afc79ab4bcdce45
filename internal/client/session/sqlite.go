package session

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/recipebox/internal/client/migrations"
	"github.com/dmitrijs2005/recipebox/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/dbx"
	"github.com/dmitrijs2005/recipebox/internal/filex"
	"github.com/dmitrijs2005/recipebox/internal/logging"
)

// SQLiteBackend keeps the snapshot in the local metadata table.
type SQLiteBackend struct {
	db *sql.DB
}

// RunMigrations applies the embedded client migrations. goose output goes
// to log at debug level.
func RunMigrations(ctx context.Context, db *sql.DB, log logging.Logger) error {
	goose.SetLogger(logging.NewPrintfLogger(ctx, log.With("module", "migrations")))
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// OpenSQLite opens (creating if needed) the database at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn string, log logging.Logger) (*SQLiteBackend, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection so ":memory:" databases survive between calls
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// isFilePath reports whether dsn names a plain file rather than a memory
// database or a file: URI.
func isFilePath(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:")
}

func (b *SQLiteBackend) Load(ctx context.Context) (*Snapshot, error) {
	all, err := metadata.NewSQLiteRepository(b.db).List(ctx)
	if err != nil {
		return nil, err
	}
	user, userOK := all[common.SessionUserKey]
	token, tokenOK := all[common.SessionTokenKey]
	return decodeSnapshot(user, token, userOK, tokenOK)
}

// Save writes both slots in one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, s Snapshot) error {
	user, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionUserKey, user); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionTokenKey, []byte(s.Token))
	})
}

func (b *SQLiteBackend) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(b.db).Delete(ctx, common.SessionUserKey, common.SessionTokenKey)
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// goose is configured through package-level setters, so runs are serialized.
var gooseMu sync.Mutex

// Migrate applies the pending migrations at the root of migrations and
// returns the resulting schema version. Progress is logged on log.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger) (int64, error) {
	return withGoose(ctx, pool, migrations, table, log, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return errors.Join(ErrMigrate, err)
		}
		return nil
	})
}

// Version returns the applied schema version without migrating.
func Version(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string) (int64, error) {
	return withGoose(ctx, pool, migrations, table, nil, nil)
}

// withGoose points goose at migrations and table, runs fn if set and then
// reads the schema version. The *sql.DB borrows pool connections and is
// left open.
func withGoose(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger, fn func(*sql.DB) error) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log})
	goose.SetTableName(table)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, errors.Join(ErrDialect, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if fn != nil {
		if err := fn(db); err != nil {
			return 0, err
		}
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, errors.Join(ErrMigrationStatus, err)
	}
	return version, nil
}

// gooseLogger routes goose output to slog. Fatalf does not exit; goose
// returns the error to the caller afterwards.
type gooseLogger struct{ log *slog.Logger }

func (g gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...), slog.String("component", "goose"))
}

func (g gooseLogger) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...), slog.String("component", "goose"))
}

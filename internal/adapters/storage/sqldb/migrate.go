package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

const migrationsTable = "schema_migrations"

var ErrMigrationFailed = errors.New("failed to apply migrations")

// goose configura dialecto, FS y logger de forma global.
var gooseMu sync.Mutex

// Migrate aplica las migraciones embebidas del dialecto (esquema + datos de ejemplo).
func Migrate(ctx context.Context, db *sql.DB, d Dialect, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	gooseDialect := "postgres"
	if d == SQLite {
		gooseDialect = "sqlite3"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	goose.SetLogger(&gooseLogger{log: log})
	goose.SetTableName(migrationsTable)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	dir := path.Join("migrations", string(d))
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errors.Join(ErrMigrationFailed, fmt.Errorf("%s: %w", dir, err))
	}
	return nil
}

// gooseLogger manda los Printf de goose al logger de la app.
type gooseLogger struct {
	log *slog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...), slog.String("component", "migrate"))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...), slog.String("component", "migrate"))
}

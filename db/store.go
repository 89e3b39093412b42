package db

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adlio/schema"
	"github.com/cockroachdb/errors"
	"github.com/israelmw/QuickAudit/config"
	"github.com/israelmw/QuickAudit/db/tables"
	"github.com/jmoiron/sqlx"

	"go.uber.org/zap"

	sq "github.com/Masterminds/squirrel"
	fq "github.com/eisenwinter/fiql-sql-adapter"
)

//go:embed migrations
var migrations embed.FS

var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("the requested entry was not found")
	// ErrAlreadyExists indicates the entity already exists within the store
	ErrAlreadyExists = errors.New("this entity already exists")
	// ErrNothingToRevert signals the compensating write did not touch any row
	ErrNothingToRevert = errors.New("the targeted row does not exist anymore")
)

const (
	configTable = "quickaudit_config"
	logTable    = "audit_log"
	// migrationsTable is the bookkeeping table of the migrator
	migrationsTable = "schema_migrations"
)

// ownTables are never offered for auditing
var ownTables = []string{configTable, logTable, migrationsTable}

// ListOptions are used for paginated lists
type ListOptions struct {
	PageSize int
	Page     int
	Sort     string
	Query    string
}

// DataStore talks to the audited database
type DataStore struct {
	log        *zap.Logger
	db         *sqlx.DB
	dialect    string
	sb         sq.StatementBuilderType
	adapters   map[string]*fq.Adapter
	migrate    func() error
	procedures procedures
}

// Close closes the underlying connection pool
func (d *DataStore) Close() {
	if err := d.db.Close(); err != nil {
		d.log.Warn("closing database failed", zap.Error(err))
	}
}

// Dialect returns either pg or sqlite
func (d *DataStore) Dialect() string {
	return d.dialect
}

// EnsureUsable applies all pending migrations
func (d *DataStore) EnsureUsable() error {
	if d.migrate != nil {
		return d.migrate()
	}
	return nil
}

// Ping checks if the database is reachable
func (d *DataStore) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DataStore) exists(
	ctx context.Context,
	table string,
	pred interface{},
	tx *sqlx.Tx,
) (bool, error) {
	var result bool
	q := d.sb.Select("1").Prefix("SELECT EXISTS (").From(table).Where(pred).Suffix(")")
	var err error
	if tx != nil {
		err = q.RunWith(tx).ScanContext(ctx, &result)
	} else {
		err = q.RunWith(d.db).ScanContext(ctx, &result)
	}
	if err != nil {
		return false, err
	}
	return result, nil
}

func (d *DataStore) getStatement(
	ctx context.Context,
	dest interface{},
	statement sq.SelectBuilder,
	tx *sqlx.Tx,
) error {
	q, a, err := statement.ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return err
	}
	if tx != nil {
		return tx.GetContext(ctx, dest, q, a...)
	}
	return d.db.GetContext(ctx, dest, q, a...)
}

func (d *DataStore) selectStatement(
	ctx context.Context,
	dest interface{},
	statement sq.SelectBuilder,
	tx *sqlx.Tx,
) error {
	q, a, err := statement.ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return err
	}
	if tx != nil {
		return tx.SelectContext(ctx, dest, q, a...)
	}
	return d.db.SelectContext(ctx, dest, q, a...)
}

type sqlizer interface {
	ToSql() (string, []interface{}, error)
}

// execStatement runs insert, update and delete builders
func (d *DataStore) execStatement(
	ctx context.Context,
	statement sqlizer,
	tx *sqlx.Tx,
) (sql.Result, error) {
	q, a, err := statement.ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return nil, err
	}
	if tx != nil {
		return tx.ExecContext(ctx, q, a...)
	}
	return d.db.ExecContext(ctx, q, a...)
}

func rollBack(tx *sqlx.Tx, d *DataStore) {
	if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
		d.log.Error("couldnt rollback", zap.Error(rerr))
	}
}

// quoteIdent quotes a column or table name, both dialects use double quotes
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// NewStore opens the configured database
func NewStore(logger *zap.Logger, cfg *config.DatabaseConfiguration) (*DataStore, error) {
	switch cfg.Type {
	case "sqlite":
		return NewSqliteStore(logger.Named("database"), cfg)
	case "pg":
		return NewPostgresStore(logger.Named("database"), cfg)
	default:
		return nil, errors.Newf("unknown datastore %q", cfg.Type)
	}
}

// NewPostgresStore opens a postgres database through the pgx driver
func NewPostgresStore(logger *zap.Logger, cfg *config.DatabaseConfiguration) (*DataStore, error) {
	db, err := sqlx.Open("pgx", cfg.DSN)
	if err != nil {
		logger.Error("Could open database", zap.Error(err))
		return nil, errors.Wrap(err, "opening postgres")
	}

	migrate := func() error {
		migrator := schema.NewMigrator(schema.WithDialect(schema.Postgres))
		mig, err := schema.FSMigrations(migrations, "migrations/pg/*.sql")
		if err != nil {
			return err
		}
		return migrator.Apply(db.DB, mig)
	}

	d := &DataStore{
		log:      logger,
		db:       db,
		dialect:  "pg",
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		migrate:  migrate,
		adapters: createMapping(fq.WithDialectPostgres()),
	}
	if cfg.UseProcedures {
		logger.Info("using stored procedures of the backend")
		d.procedures = &rpcProcedures{db: db, log: logger.Named("rpc")}
	} else {
		d.procedures = &directProcedures{d: d}
	}
	return d, nil
}

// NewSqliteStore opens a sqlite database, mostly used for development and tests
func NewSqliteStore(logger *zap.Logger, cfg *config.DatabaseConfiguration) (*DataStore, error) {
	db, err := sqlx.Open("sqlite3", cfg.DSN)
	if err != nil {
		logger.Error("Could open database", zap.Error(err))
		return nil, errors.Wrap(err, "opening sqlite")
	}
	// :memory: databases only live as long as their connection
	if strings.Contains(cfg.DSN, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// check if dsn contains a directory which needs to be created
	split := strings.Split(cfg.DSN, "?")
	if len(split) >= 1 && strings.ContainsRune(split[0], os.PathSeparator) {
		striped := strings.TrimPrefix(split[0], "file:")
		dir := filepath.Dir(striped)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Warn("Trying to create directory", zap.String("directory", dir))
			if err = os.MkdirAll(dir, 0750); err != nil {
				logger.Error("Could open database", zap.Error(err))
				return nil, err
			}
		}
	}

	migrate := func() error {
		migrator := schema.NewMigrator(schema.WithDialect(schema.SQLite))
		mig, err := schema.FSMigrations(migrations, "migrations/sqlite/*.sql")
		if err != nil {
			return err
		}
		return migrator.Apply(db.DB, mig)
	}

	d := &DataStore{
		log:      logger,
		db:       db,
		dialect:  "sqlite",
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Question),
		migrate:  migrate,
		adapters: createMapping(fq.WithDialectSQLite()),
	}
	d.procedures = &directProcedures{d: d}
	return d, nil
}

func createMapping(options ...func(*fq.Adapter)) map[string]*fq.Adapter {
	adapters := make(map[string]*fq.Adapter)
	adapters[configTable] = fq.NewAdapterFor(tables.QuickAuditConfigTable{}, options...)
	adapters[logTable] = fq.NewAdapterFor(tables.AuditLogTable{}, options...)
	return adapters
}

func (d *DataStore) whereFromAdapater(
	table string,
	query string,
) (func(sq.SelectBuilder) sq.SelectBuilder, error) {
	if query != "" {
		where, err := d.adapters[table].Where(query)
		if err != nil {
			return nil, err
		}
		w, a, err := where.ToSql()
		if err != nil {
			return nil, err
		}
		return func(sb sq.SelectBuilder) sq.SelectBuilder {
			return sb.Where(w, a...)
		}, nil
	}
	return func(sb sq.SelectBuilder) sq.SelectBuilder {
		return sb
	}, nil
}

func (d *DataStore) orderByFromAdapater(
	q sq.SelectBuilder,
	table string,
	defaultOrderby string,
	opts ListOptions,
) sq.SelectBuilder {
	if opts.Sort == "" {
		return q.OrderBy(defaultOrderby)
	}
	order, err := d.adapters[table].OrderBy(opts.Sort)
	if err != nil {
		d.log.Debug("ignoring invalid sort", zap.Error(err))
		return q.OrderBy(defaultOrderby)
	}
	or, _, err := order.ToSql()
	if err != nil || or == "" {
		return q.OrderBy(defaultOrderby)
	}
	return q.OrderBy(or)
}

// Package iodb implements database operations on top of database/sql.
// PostgreSQL connections go through a pgxpool wrapped by the pgx stdlib
// adapter; MySQL and SQLite use their database/sql drivers directly.
// This is an impure I/O package that implements contracts defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/db"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// connectTimeout limits how long establishing a connection may take.
const connectTimeout = 60 * time.Second

// sqlOperator implements db.Operator interface.
type sqlOperator struct {
	// pool is only set for PostgreSQL.
	pool    *pgxpool.Pool
	db      *sql.DB
	dialect db.Dialect
}

// NewOperator creates a new database operator
// (without connecting).
func NewOperator() db.Operator {
	return &sqlOperator{}
}

// Connect opens the handle for the configured driver and verifies it
// with a ping.
func (o *sqlOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dialect, ok := db.DialectFor(cfg.Driver)
	if !ok {
		return UnknownDriverError(cfg.Driver)
	}

	var err error
	switch dialect {
	case db.Postgres:
		err = o.openPostgres(ctx, cfg)
	case db.MySQL:
		err = o.openMySQL(cfg)
	case db.SQLite:
		err = o.openSQLite(cfg)
	}
	if err != nil {
		return ConnectionError(cfg, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err = o.db.PingContext(pingCtx); err != nil {
		_ = o.Close()
		return ConnectionError(cfg, err)
	}

	o.dialect = dialect
	return nil
}

func (o *sqlOperator) openPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	poolConfig, err := pgxpool.ParseConfig(postgresDSN(cfg))
	if err != nil {
		return err
	}

	// Ingestion is sequential, one connection does the work.
	poolConfig.MaxConns = 2
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return err
	}

	o.pool = pool
	o.db = stdlib.OpenDBFromPool(pool)
	return nil
}

// postgresDSN builds the connection URL. Credentials and the database name
// are escaped, so they may contain any characters.
func postgresDSN(cfg *config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func (o *sqlOperator) openMySQL(cfg *config.DatabaseConfig) error {
	mcfg := mysql.NewConfig()
	mcfg.User = cfg.User
	mcfg.Passwd = cfg.Password
	mcfg.Net = "tcp"
	mcfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mcfg.DBName = cfg.Database
	mcfg.Timeout = connectTimeout

	connector, err := mysql.NewConnector(mcfg)
	if err != nil {
		return err
	}
	o.db = sql.OpenDB(connector)
	return nil
}

func (o *sqlOperator) openSQLite(cfg *config.DatabaseConfig) error {
	sqlDB, err := sql.Open("sqlite", cfg.Database)
	if err != nil {
		return err
	}
	// SQLite allows one writer at a time.
	sqlDB.SetMaxOpenConns(1)
	o.db = sqlDB
	return nil
}

// Close releases all database connections.
func (o *sqlOperator) Close() error {
	var err error
	if o.db != nil {
		err = o.db.Close()
		o.db = nil
	}
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
	return err
}

// DB returns the database/sql handle, nil before Connect.
func (o *sqlOperator) DB() *sql.DB {
	return o.db
}

// Dialect returns SQL differences of the connected engine.
func (o *sqlOperator) Dialect() db.Dialect {
	return o.dialect
}

// TableExists checks if a table exists in the current
// database.
func (o *sqlOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	var query string
	switch o.dialect {
	case db.Postgres:
		query = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = current_schema()
			AND table_name = $1
		)`
	case db.MySQL:
		query = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = DATABASE()
			AND table_name = ?
		)`
	default:
		query = `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)`
	}

	var exists bool
	err := o.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// DropTable drops a table if it exists.
func (o *sqlOperator) DropTable(ctx context.Context, tableName string) error {
	if o.db == nil {
		return NotConnectedError()
	}

	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := o.db.ExecContext(ctx, dropSQL); err != nil {
		return DropTableError(tableName, err)
	}
	return nil
}

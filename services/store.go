package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"securecheck/config"
	"securecheck/models"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ErrorKind string

const (
	ConnectionError ErrorKind = "connection"
	QueryError      ErrorKind = "query"
)

type StoreError struct {
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	if e.Kind == ConnectionError {
		return fmt.Sprintf("Database Connection Error: %v", e.Err)
	}
	return fmt.Sprintf("Error Fetching Data: %v", e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Dialer opens a fresh gorm handle. Every Store call dials and closes its own.
type Dialer func(ctx context.Context) (*gorm.DB, error)

// NewDialer picks the gorm dialector for cfg.Driver.
func NewDialer(cfg config.DatabaseConfig) Dialer {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	switch cfg.Driver {
	case "sqlite":
		dsn := sqliteDSN(cfg.GetDSN())
		return func(ctx context.Context) (*gorm.DB, error) {
			db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
			if err != nil {
				closeGorm(db)
				return nil, err
			}
			return db, nil
		}
	case "mysql":
		return func(ctx context.Context) (*gorm.DB, error) {
			db, err := gorm.Open(mysql.Open(cfg.GetDSN()), gormCfg)
			if err != nil {
				closeGorm(db)
				return nil, err
			}
			return db, nil
		}
	}

	return func(ctx context.Context) (*gorm.DB, error) {
		pgCfg, err := pgx.ParseConfig(cfg.GetDSN())
		if err != nil {
			return nil, err
		}
		sqlDB := stdlib.OpenDB(*pgCfg)
		sqlDB.SetMaxOpenConns(1)
		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return nil, err
		}
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		return db, nil
	}
}

// Store is the only path to the database. It never writes.
type Store struct {
	dial Dialer
	log  *zap.Logger
}

func NewStore(dial Dialer, log *zap.Logger) *Store {
	return &Store{dial: dial, log: log}
}

// Query runs one statement on its own connection and materialises every row.
// The connection is closed before Query returns, whatever happened.
func (s *Store) Query(ctx context.Context, query string) (table *models.Table, err error) {
	start := time.Now()
	defer func() {
		queryDuration.Observe(time.Since(start).Seconds())
		result := "ok"
		var se *StoreError
		if errors.As(err, &se) {
			result = string(se.Kind)
		}
		queriesTotal.WithLabelValues(result).Inc()
	}()

	db, err := s.dial(ctx)
	if err != nil {
		return nil, &StoreError{Kind: ConnectionError, Err: err}
	}
	defer closeGorm(db)

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, &StoreError{Kind: QueryError, Err: err}
	}
	defer rows.Close()

	table, err = scanTable(rows)
	if err != nil {
		return nil, &StoreError{Kind: QueryError, Err: err}
	}
	return table, nil
}

// Execute is Query with failures reported to r and turned into an empty table.
// An empty result therefore means "nothing to show", whatever the cause.
func (s *Store) Execute(ctx context.Context, query string, r Reporter) *models.Table {
	table, err := s.Query(ctx, query)
	if err != nil {
		s.log.Warn("query failed", zap.String("sql", query), zap.Error(err))
		r.Error(err.Error())
		return models.EmptyTable()
	}
	return table
}

// FetchAll loads the whole stop table.
func (s *Store) FetchAll(ctx context.Context, r Reporter) *models.Table {
	return s.Execute(ctx, "SELECT * FROM "+models.StopTableName, r)
}

// sqliteDSN opens an existing database file read-write. A wrong path fails to
// connect instead of creating an empty file.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?mode=rw"
}

// closeGorm releases whatever pool db holds, also when db.DB() cannot expose
// it as a *sql.DB.
func closeGorm(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
		return
	}
	pool := db.ConnPool
	if db.Statement != nil && db.Statement.ConnPool != nil {
		pool = db.Statement.ConnPool
	}
	if c, ok := pool.(io.Closer); ok {
		c.Close()
	}
}

func scanTable(rows *sql.Rows) (*models.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	table := &models.Table{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

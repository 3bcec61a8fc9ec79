// Package database owns the MySQL handle shared by every repository and the
// startup schema migration.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool bounds the shared connection pool.  Checkout traffic is many short
// transactions, so idle connections stay warm instead of being torn down
// between requests; values come from the DB_* env vars via config.
type Pool struct {
	MaxOpen int
	MaxIdle int
	ConnTTL time.Duration
}

// pingTimeout caps the startup connectivity check so a wrong DB host fails
// the boot fast instead of hanging.
const pingTimeout = 5 * time.Second

// Open connects to MySQL, applies the pool bounds and verifies the
// connection with a ping before anything is served.
func Open(user, pass, host, port, name string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.ConnTTL)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// dsn builds the driver connection string.  parseTime makes the DATETIME
// columns (show start times, reservation timestamps) scan into time.Time,
// and loc=UTC pins them to the zone everything here stores and compares in.
// An empty password drops the colon so local passwordless setups work.
func dsn(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = user + ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

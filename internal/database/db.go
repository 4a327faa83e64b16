package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the reservations table when it does not exist yet.  The
// unique keys on start_date and end_date are load-bearing: they are the
// storage-level constraint that rejects a second booking claiming an
// already-taken boundary day, even when two requests race past the
// service-level overlap check.
func Migrate(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS reservations (
        uid          CHAR(36)     NOT NULL,
        start_date   DATETIME     NOT NULL,
        end_date     DATETIME     NOT NULL,
        booking_date DATETIME     NOT NULL,
        email        VARCHAR(255) NOT NULL,
        full_name    VARCHAR(255) NOT NULL,
        PRIMARY KEY (uid),
        UNIQUE KEY uq_reservations_start_date (start_date),
        UNIQUE KEY uq_reservations_end_date (end_date)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

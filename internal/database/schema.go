package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the DDL flavour used by Migrate.  Repositories only use
// SQL that both dialects accept; the table definitions differ in
// auto-increment and JSON column syntax.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
	`CREATE TABLE IF NOT EXISTS hotels (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		location    VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price       DOUBLE NOT NULL,
		rating      DOUBLE NOT NULL DEFAULT 0,
		amenities   JSON NOT NULL,
		room_types  JSON NOT NULL,
		image_url   VARCHAR(1024) NOT NULL DEFAULT '',
		created_at  DATETIME NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id          BIGINT UNSIGNED NOT NULL,
		hotel_id         BIGINT UNSIGNED NOT NULL,
		check_in_date    DATETIME NOT NULL,
		check_out_date   DATETIME NOT NULL,
		room_type        VARCHAR(255) NOT NULL,
		number_of_guests INT UNSIGNED NOT NULL,
		total_amount     DOUBLE NOT NULL,
		status           VARCHAR(32) NOT NULL DEFAULT 'CONFIRMED',
		is_checked_in    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       DATETIME NOT NULL,
		updated_at       DATETIME NOT NULL,
		KEY idx_bookings_user_created (user_id, created_at),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_hotel FOREIGN KEY (hotel_id) REFERENCES hotels (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS checkins (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		booking_id     BIGINT UNSIGNED NOT NULL,
		family_members JSON NOT NULL,
		created_at     DATETIME NOT NULL,
		UNIQUE KEY uq_checkins_booking (booking_id),
		CONSTRAINT fk_checkins_booking FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS hotels (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		location    TEXT NOT NULL,
		description TEXT NOT NULL,
		price       REAL NOT NULL,
		rating      REAL NOT NULL DEFAULT 0,
		amenities   TEXT NOT NULL,
		room_types  TEXT NOT NULL,
		image_url   TEXT NOT NULL DEFAULT '',
		created_at  DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id          INTEGER NOT NULL REFERENCES users (id),
		hotel_id         INTEGER NOT NULL REFERENCES hotels (id),
		check_in_date    DATETIME NOT NULL,
		check_out_date   DATETIME NOT NULL,
		room_type        TEXT NOT NULL,
		number_of_guests INTEGER NOT NULL,
		total_amount     REAL NOT NULL,
		status           TEXT NOT NULL DEFAULT 'CONFIRMED',
		is_checked_in    BOOLEAN NOT NULL DEFAULT 0,
		created_at       DATETIME NOT NULL,
		updated_at       DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS checkins (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		booking_id     INTEGER NOT NULL UNIQUE REFERENCES bookings (id) ON DELETE CASCADE,
		family_members TEXT NOT NULL,
		created_at     DATETIME NOT NULL
	)`,
}

// Migrate creates the users, hotels, bookings and checkins tables when they
// do not exist yet.  It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var stmts []string
	switch dialect {
	case DialectMySQL:
		stmts = mysqlSchema
	case DialectSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("migrate: unknown dialect %q", dialect)
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: statement %d: %w", i+1, err)
		}
	}
	return nil
}

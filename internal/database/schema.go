package database

import (
	"context"
	"database/sql"
)

// schema lists every table the service needs, in dependency order.  Statements
// are idempotent so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		name          VARCHAR(255) NOT NULL DEFAULT '',
		role          VARCHAR(16)  NOT NULL DEFAULT 'CUSTOMER',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_refresh_hash (token_hash),
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title        VARCHAR(255) NOT NULL,
		description  TEXT,
		genre        VARCHAR(64)  NOT NULL DEFAULT '',
		rating       VARCHAR(8)   NOT NULL DEFAULT '',
		poster_url   VARCHAR(512) NOT NULL DEFAULT '',
		child_price  DECIMAL(10,2) NOT NULL DEFAULT 0,
		adult_price  DECIMAL(10,2) NOT NULL DEFAULT 0,
		senior_price DECIMAL(10,2) NOT NULL DEFAULT 0,
		created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(64) NOT NULL UNIQUE,
		capacity   INT UNSIGNED NOT NULL DEFAULT 100,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_id   BIGINT UNSIGNED NOT NULL,
		room_id    BIGINT UNSIGNED NOT NULL,
		starts_at  DATETIME NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_shows_room_start (room_id, starts_at),
		FOREIGN KEY (movie_id) REFERENCES movies(id),
		FOREIGN KEY (room_id) REFERENCES rooms(id)
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		show_id     BIGINT UNSIGNED NOT NULL,
		seat_number INT UNSIGNED NOT NULL,
		is_reserved TINYINT(1) NOT NULL DEFAULT 0,
		user_id     BIGINT UNSIGNED NULL,
		age         INT UNSIGNED NULL,
		reserved_at DATETIME NULL,
		UNIQUE KEY uq_seats_show_number (show_id, seat_number),
		FOREIGN KEY (show_id) REFERENCES shows(id)
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		code       VARCHAR(64) NOT NULL UNIQUE,
		percent    DECIMAL(5,2) NOT NULL,
		starts_on  DATE NOT NULL,
		ends_on    DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		reference  CHAR(36) NOT NULL UNIQUE,
		user_id    BIGINT UNSIGNED NOT NULL,
		show_id    BIGINT UNSIGNED NOT NULL,
		status     VARCHAR(16) NOT NULL DEFAULT 'CONFIRMED',
		promo_code VARCHAR(64) NULL,
		subtotal   DECIMAL(10,2) NOT NULL,
		discount   DECIMAL(10,2) NOT NULL DEFAULT 0,
		tax        DECIMAL(10,2) NOT NULL,
		total      DECIMAL(10,2) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (show_id) REFERENCES shows(id)
	)`,
	`CREATE TABLE IF NOT EXISTS booking_seats (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id  BIGINT UNSIGNED NOT NULL,
		seat_number INT UNSIGNED NOT NULL,
		age         INT UNSIGNED NOT NULL,
		price       DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (booking_id) REFERENCES bookings(id)
	)`,
}

// Migrate creates any missing tables.  It is safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

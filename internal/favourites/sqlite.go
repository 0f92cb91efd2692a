// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package favourites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wneessen/weather-dash/internal/geo"
)

const themeKey = "theme"

const schema = `
CREATE TABLE IF NOT EXISTS favourites (
    name    TEXT NOT NULL,
    country TEXT NOT NULL,
    lat     REAL NOT NULL,
    lon     REAL NOT NULL,
    PRIMARY KEY (lat, lon)
);
CREATE TABLE IF NOT EXISTS preferences (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at path and creates the schema if needed. The parent directory
// is created if it does not exist.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// List returns the favourites in the order they were added.
func (s *SQLite) List(ctx context.Context) ([]Favourite, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, country, lat, lon FROM favourites ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favourites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	favs := make([]Favourite, 0)
	for rows.Next() {
		var fav Favourite
		if err = rows.Scan(&fav.Name, &fav.Country, &fav.Lat, &fav.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan favourite: %w", err)
		}
		favs = append(favs, fav)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favourites: %w", err)
	}
	return favs, nil
}

// Contains reports whether a favourite with the given coordinates exists.
func (s *SQLite) Contains(ctx context.Context, coords geo.Coordinate) (bool, error) {
	return contains(ctx, s.db, coords)
}

// Add stores fav. An existing favourite with the same coordinates is left untouched.
func (s *SQLite) Add(ctx context.Context, fav Favourite) error {
	if fav.Country == "" {
		fav.Country = fav.Name
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO favourites (name, country, lat, lon) VALUES (?, ?, ?, ?)`,
		fav.Name, fav.Country, fav.Lat, fav.Lon)
	if err != nil {
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

// Remove deletes the favourite with the given coordinates.
func (s *SQLite) Remove(ctx context.Context, coords geo.Coordinate) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM favourites WHERE lat = ? AND lon = ?`,
		coords.Lat, coords.Lon); err != nil {
		return fmt.Errorf("failed to remove favourite: %w", err)
	}
	return nil
}

// Toggle adds fav or removes the favourite with the same coordinates.
func (s *SQLite) Toggle(ctx context.Context, fav Favourite) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	coords := fav.Coordinate()
	exists, err := contains(ctx, tx, coords)
	if err != nil {
		return false, err
	}
	if exists {
		if _, err = tx.ExecContext(ctx, `DELETE FROM favourites WHERE lat = ? AND lon = ?`,
			coords.Lat, coords.Lon); err != nil {
			return false, fmt.Errorf("failed to remove favourite: %w", err)
		}
	} else {
		if fav.Country == "" {
			fav.Country = fav.Name
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO favourites (name, country, lat, lon) VALUES (?, ?, ?, ?)`,
			fav.Name, fav.Country, fav.Lat, fav.Lon); err != nil {
			return false, fmt.Errorf("failed to add favourite: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return !exists, nil
}

// Theme returns the stored theme. The dark theme is returned if none was stored.
func (s *SQLite) Theme(ctx context.Context) (Theme, error) {
	var val string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, themeKey).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return ThemeDark, nil
	}
	if err != nil {
		return ThemeDark, fmt.Errorf("failed to query theme: %w", err)
	}
	return ParseTheme(val)
}

// SetTheme stores the theme.
func (s *SQLite) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value`, themeKey, string(theme))
	if err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func contains(ctx context.Context, q querier, coords geo.Coordinate) (bool, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM favourites WHERE lat = ? AND lon = ?`,
		coords.Lat, coords.Lon).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query favourite: %w", err)
	}
	return count > 0, nil
}

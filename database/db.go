package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/mattn/go-sqlite3"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// DB wraps the embedded sqlite database. Access is limited to one
// connection at a time: every operation acquires the connection, runs
// synchronously and releases it, matching the single-user execution model.
// Concurrent updates to the same record are last-writer-wins.
type DB struct {
	conn       *sql.DB
	options    *gocache.Cache
	plainsware *regexp.Regexp
}

var defaultPlainswarePattern = regexp.MustCompile(`(?i)^JJMD-\d{7}$`)

// Open opens (creating if absent) the sqlite database at path and pings it.
func Open(ctx context.Context, path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, &StorageError{Op: "open database", Err: err}
	}

	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, &StorageError{Op: "ping database", Err: err}
	}

	logrus.WithField("path", path).Info("database opened")
	return &DB{
		conn:       conn,
		options:    gocache.New(gocache.NoExpiration, 0),
		plainsware: defaultPlainswarePattern,
	}, nil
}

// SetPlainswarePattern overrides the validation rule for
// plainsware_number. The rule is deployment policy, not code: different
// installations enforce different formats.
func (db *DB) SetPlainswarePattern(re *regexp.Regexp) {
	if re != nil {
		db.plainsware = re
	}
}

func (db *DB) Close() {
	db.conn.Close()
	logrus.Info("database closed")
}

// dropOptionCache discards cached distinct-value option sets. Called after
// every mutation so dropdowns never show stale values.
func (db *DB) dropOptionCache() {
	db.options.Flush()
}

func nowTimestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func validateISODate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not an ISO date (YYYY-MM-DD)", value)}
	}
	return nil
}

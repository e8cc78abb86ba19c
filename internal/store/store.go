// Package store keeps a local history of lookups in a sqlite
// database, so past searches can be listed with 'csvseek history'.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csvseek/csvseek/internal/util"
)

const schema = `
create table if not exists lookups (
	id integer primary key autoincrement,
	recorded_at text not null,
	source text not null,
	term text not null,
	matches integer not null,
	output text not null
);
`

// Store is a handle on the history database.
type Store struct {
	db *sql.DB
}

// Location returns the database path: CSVSEEK_STORE if set, else
// history.db under the user cache directory.
func Location() string {
	if loc, ok := os.LookupEnv("CSVSEEK_STORE"); ok {
		return loc
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".csvseek", "history.db")
	}
	return filepath.Join(cache, "csvseek", "history.db")
}

// Open opens (creating if necessary) the history database at the
// default location.
func Open() (*Store, error) {
	return OpenAt(Location())
}

// OpenAt opens the history database at the given path, creating the
// database file, its parent directories, and the schema if needed.
func OpenAt(path string) (*Store, error) {
	if err := util.EnsureFile(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one lookup to the history.
func (s *Store) Record(l Lookup) error {
	recordedAt := l.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		"insert into lookups (recorded_at, source, term, matches, output) values (?, ?, ?, ?, ?)",
		recordedAt.UTC().Format(time.RFC3339), l.Source, l.Term, l.Matches, l.Output,
	)
	return err
}

// Recent returns up to n lookups, newest first.
func (s *Store) Recent(n int) ([]Lookup, error) {
	rows, err := s.db.Query(
		"select recorded_at, source, term, matches, output from lookups order by id desc limit ?", n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lookups := []Lookup{}
	for rows.Next() {
		var l Lookup
		var recordedAt string
		if err := rows.Scan(&recordedAt, &l.Source, &l.Term, &l.Matches, &l.Output); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			l.RecordedAt = ts
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}

package tilesheet

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/tilesheet/upload"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNoSheet is returned when a reference matches no stored tile sheet.
var ErrNoSheet = errors.New("tilesheet: no such tile sheet")

// ErrAmbiguous is returned when a reference matches more than one stored
// tile sheet.
var ErrAmbiguous = errors.New("tilesheet: ambiguous tile sheet reference")

// Sheet describes a tile sheet held in a SheetDB.
type Sheet struct {
	SHA1   string
	Name   string
	Format string
	Width  int
	Height int
}

// SheetDB is a library of source tile sheet images. Only the original
// images are stored, never anything derived from editing.
type SheetDB struct {
	db *sql.DB
}

// NewSheetDB opens, creating if necessary, the library in file.
func NewSheetDB(file string) (*SheetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, format TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &SheetDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *SheetDB) Close() error {
	return db.db.Close()
}

// Import adds the image in file to the library and returns its SHA-1. Importing
// the same image twice is harmless.
func (db *SheetDB) Import(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	b, err := io.ReadAll(io.TeeReader(f, h))
	if err != nil {
		return "", err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	format, width, height, err := upload.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM sheet WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		if _, err := db.db.Exec("INSERT INTO sheet (sha1, name, format, width, height, data) VALUES (?, ?, ?, ?, ?, ?)", sha, filepath.Base(file), format, width, height, b); err != nil {
			return "", err
		}
		return sha, nil
	case nil:
		return sha, nil
	default:
		return "", err
	}
}

// List returns every tile sheet in the library ordered by name.
func (db *SheetDB) List() ([]Sheet, error) {
	rows, err := db.db.Query("SELECT sha1, name, format, width, height FROM sheet ORDER BY name, sha1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []Sheet
	for rows.Next() {
		var s Sheet
		if err := rows.Scan(&s.SHA1, &s.Name, &s.Format, &s.Width, &s.Height); err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}

	return sheets, rows.Err()
}

// lookup resolves ref, which is a name or a full or abbreviated SHA-1.
func (db *SheetDB) lookup(ref string) (int64, Sheet, error) {
	rows, err := db.db.Query("SELECT id, sha1, name, format, width, height FROM sheet WHERE name = ? OR substr(sha1, 1, length(?)) = ?", ref, ref, strings.ToUpper(ref))
	if err != nil {
		return 0, Sheet{}, err
	}
	defer rows.Close()

	var (
		id    int64
		s     Sheet
		found int
	)
	for rows.Next() {
		if err := rows.Scan(&id, &s.SHA1, &s.Name, &s.Format, &s.Width, &s.Height); err != nil {
			return 0, Sheet{}, err
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return 0, Sheet{}, err
	}

	switch {
	case ref == "" || found == 0:
		return 0, Sheet{}, ErrNoSheet
	case found > 1:
		return 0, Sheet{}, ErrAmbiguous
	}

	return id, s, nil
}

// Find returns the stored tile sheet matching ref as a Source ready to be
// loaded.
func (db *SheetDB) Find(ref string) (Sheet, upload.Source, error) {
	id, s, err := db.lookup(ref)
	if err != nil {
		return Sheet{}, upload.Source{}, err
	}

	var b []byte
	if err := db.db.QueryRow("SELECT data FROM sheet WHERE id = ?", id).Scan(&b); err != nil {
		return Sheet{}, upload.Source{}, err
	}

	return s, upload.Bytes(s.Name, b), nil
}

// Delete removes the tile sheet matching ref.
func (db *SheetDB) Delete(ref string) error {
	id, _, err := db.lookup(ref)
	if err != nil {
		return err
	}

	_, err = db.db.Exec("DELETE FROM sheet WHERE id = ?", id)
	return err
}

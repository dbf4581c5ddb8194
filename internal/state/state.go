// Package state persists small pieces of local application state: the auth
// token, the signed-in user record, and UI preferences. Tasks and tags are
// never stored here; the remote service is the only source of truth for them.
package state

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/taskdeck/taskdeck/internal/models"
)

//go:embed schema.sql
var schema string

// Keys for well-known settings.
const (
	keyToken    = "auth_token"
	keyUser     = "user"
	KeyLastView = "last_view"
)

// DB wraps the local state database.
type DB struct {
	*sql.DB
}

// Open opens (and if needed creates) the state database in the XDG data dir.
func Open() (*DB, error) {
	path, err := statePath()
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens the state database at an explicit path. Used by tests.
func OpenPath(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

func statePath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "taskdeck")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "state.db"), nil
}

// GetSetting retrieves a setting value by key; missing keys read as "".
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (db *DB) deleteSetting(key string) error {
	_, err := db.Exec("DELETE FROM settings WHERE key = ?", key)
	return err
}

// Token returns the stored bearer token, or "" when signed out.
func (db *DB) Token() string {
	token, _ := db.GetSetting(keyToken)
	return token
}

// SaveSession stores the token and user record after a successful login.
func (db *DB) SaveSession(token string, user models.User) error {
	if err := db.SetSetting(keyToken, token); err != nil {
		return err
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return db.SetSetting(keyUser, string(raw))
}

// User returns the stored user record, or nil when none is stored.
func (db *DB) User() *models.User {
	raw, err := db.GetSetting(keyUser)
	if err != nil || raw == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// ClearSession evicts the token and user record.
func (db *DB) ClearSession() error {
	if err := db.deleteSetting(keyToken); err != nil {
		return err
	}
	return db.deleteSetting(keyUser)
}

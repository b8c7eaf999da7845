package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"spilcafe/internal/favorites"
)

// Keys of the records the app stores.
const (
	KeyFavorites = favorites.StorageKey
	KeyUIPrefs   = "ui_prefs"
)

// Get returns the value stored under key. ok is false when nothing is stored.
func Get(db *sql.DB, key string) (value string, ok bool, err error) {
	err = db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func Put(db *sql.DB, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.Exec(query, key, value, updatedAt); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// LoadFavorites reads the favorite set. Read failures and corrupt data both
// yield an empty set.
func LoadFavorites(db *sql.DB) favorites.Set {
	value, ok, err := Get(db, KeyFavorites)
	if err != nil {
		log.Printf("load favorites: %v", err)
		return favorites.Set{}
	}
	if !ok {
		return favorites.Set{}
	}
	return favorites.Decode([]byte(value))
}

// SaveFavorites replaces the stored favorite set with s.
func SaveFavorites(db *sql.DB, s favorites.Set) error {
	data, err := favorites.Encode(s)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	return Put(db, KeyFavorites, string(data))
}

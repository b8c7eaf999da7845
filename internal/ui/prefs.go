package ui

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"spilcafe/internal/db"
)

// TablePrefs stores per-table UI preferences.
type TablePrefs struct {
	SortKey       string   `json:"sort_key"`
	HiddenColumns []string `json:"hidden_columns"`
	ActiveColumn  string   `json:"active_column"`
}

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	Games TablePrefs `json:"games"`
}

func loadUIPreferences(database *sql.DB) UIPreferences {
	if database == nil {
		return UIPreferences{}
	}
	value, ok, err := db.Get(database, db.KeyUIPrefs)
	if err != nil {
		log.Printf("load ui prefs: %v", err)
		return UIPreferences{}
	}
	if !ok {
		return UIPreferences{}
	}

	var prefs UIPreferences
	if err := json.Unmarshal([]byte(value), &prefs); err != nil {
		log.Printf("ignoring corrupt ui prefs: %v", err)
		return UIPreferences{}
	}
	return prefs
}

func saveUIPreferences(database *sql.DB, prefs UIPreferences) error {
	if database == nil {
		return nil
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	return db.Put(database, db.KeyUIPrefs, string(data))
}

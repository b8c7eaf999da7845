package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("timeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.CatalogURL != "" || cfg.HomeCafe != "" || cfg.ShowVersion {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("SPILCAFE_DB", "/tmp/from-env.db")
	t.Setenv("SPILCAFE_CATALOG_URL", "http://example.test/games.json")
	t.Setenv("SPILCAFE_HTTP_TIMEOUT", "3s")
	t.Setenv("SPILCAFE_HOME_CAFE", "odense")

	cfg, err := parseConfig([]string{"-db", "/tmp/from-flag.db", "-version"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DBPath != "/tmp/from-flag.db" {
		t.Fatalf("db = %q, flag should win", cfg.DBPath)
	}
	if cfg.CatalogURL != "http://example.test/games.json" {
		t.Fatalf("catalog url = %q", cfg.CatalogURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.HomeCafe != "odense" || !cfg.ShowVersion {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("SPILCAFE_HTTP_TIMEOUT", "soon")
		_, err := parseConfig(nil)
		if err == nil || !strings.Contains(err.Error(), "parse env") {
			t.Fatalf("err = %v, want parse env error", err)
		}
	})
	t.Run("unknown cafe", func(t *testing.T) {
		_, err := parseConfig([]string{"-cafe", "copenhagen"})
		if err == nil {
			t.Fatal("expected error for unknown café")
		}
	})
}

func TestResolveDBPathDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{}
	dir, err := resolveDBPath(cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dir != filepath.Join(home, ".spilcafe") {
		t.Fatalf("dir = %q", dir)
	}
	if cfg.DBPath != filepath.Join(home, ".spilcafe", "spilcafe.db") {
		t.Fatalf("db = %q", cfg.DBPath)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Fatalf("config dir not created: %v", err)
	}
}

func TestOnboardingSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	settings, err := loadOnboardingSettings(dir)
	if err != nil || settings.Completed {
		t.Fatalf("missing file should give zero settings, got %+v, %v", settings, err)
	}

	want := OnboardingSettings{Completed: true, HomeCafe: "aalborg"}
	if err := saveOnboardingSettings(dir, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := loadOnboardingSettings(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOnboardingSettingsDropUnknownCafe(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(onboardingPath(dir), []byte(`{"completed":true,"home_cafe":"gone"}`), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := loadOnboardingSettings(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Completed || got.HomeCafe != "" {
		t.Fatalf("got %+v", got)
	}
}

func TestOnboardingPicksCafe(t *testing.T) {
	var m tea.Model = newOnboardingModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should quit the setup program")
	}

	ob := m.(onboardingModel)
	if ob.settings.HomeCafe != "aarhus-c" || !ob.settings.Completed {
		t.Fatalf("settings = %+v", ob.settings)
	}
	if !strings.Contains(ob.View(), "Aarhus C") {
		t.Fatal("done view should name the chosen café")
	}
}

func TestOnboardingNoPreference(t *testing.T) {
	var m tea.Model = newOnboardingModel()
	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.(onboardingModel).settings.HomeCafe; got != "" {
		t.Fatalf("home café = %q, want none", got)
	}
}

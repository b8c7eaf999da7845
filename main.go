package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"spilcafe/cmd"
	"spilcafe/internal/catalog"
	"spilcafe/internal/db"
	"spilcafe/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	config, err := cmd.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if config.ShowVersion {
		fmt.Println("spilcafe", version)
		return
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if config.DebugLog != "" {
		f, err := tea.LogToFile(config.DebugLog, "spilcafe")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	termCaps := ui.DetectTerminalCapabilities()

	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	client := catalog.NewClient(config.CatalogURL, config.HTTPTimeout)
	log.Printf("starting %s, catalog %s, db %s", version, client.URL(), config.DBPath)

	p := tea.NewProgram(ui.New(database, client, termCaps, config.HomeCafe), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/holocron/internal/api"
	"github.com/thesavant42/holocron/internal/config"
	"github.com/thesavant42/holocron/internal/directory"
	"github.com/thesavant42/holocron/internal/models"
	"github.com/thesavant42/holocron/internal/ui"
)

// promptForPath is the -export value that asks for the path interactively
const promptForPath = "-"

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "Path to YAML config file")
	initConfig := flag.Bool("init-config", false, "Write a default config file and exit")
	baseURL := flag.String("base-url", "", "SWAPI base URL (e.g., https://swapi.dev/api)")
	page := flag.Int("page", 0, "Page to open (1-indexed)")
	logFile := flag.String("log-file", "", "File that receives logs")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	concurrency := flag.Int("concurrency", 0, "Parallel species lookups per page")
	exportDir := flag.String("export-dir", "", "Directory for markdown exports from the viewer")
	listPath := flag.String("list-snapshots", "", "List the snapshots stored in a SQLite export file and exit")
	exportPath := flag.String("export", "", "Write the page to a SQLite snapshot instead of opening the viewer (\"-\" to prompt)")
	search := flag.String("search", "", "Name search term")
	homeworld := flag.String("homeworld", "", "Homeworld reference filter")
	film := flag.String("film", "", "Film reference filter")
	species := flag.String("species", "", "Species reference filter")
	flag.Parse()

	if *initConfig {
		if err := config.WriteDefault(*configPath); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess(fmt.Sprintf("Wrote default config to %s", *configPath))
		return
	}

	if *listPath != "" {
		if err := listSnapshots(*listPath, os.Stdout); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to load config: %v", err))
		os.Exit(1)
	}

	// Flags win over file and environment, but only when given
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base-url":
			cfg.BaseURL = *baseURL
		case "page":
			cfg.StartPage = *page
		case "log-file":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "concurrency":
			cfg.EnrichConcurrency = *concurrency
		case "export-dir":
			cfg.ExportDir = *exportDir
		}
	})

	if err := cfg.Validate(); err != nil {
		ui.PrintError(fmt.Sprintf("Invalid configuration: %v", err))
		os.Exit(1)
	}

	logger, closer := newLogger(cfg)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger.WithPrefix("API")),
	)
	ctrlLogger := logger.WithPrefix("DIRECTORY")
	ctrl := directory.NewController(client,
		directory.WithControllerLogger(ctrlLogger),
		directory.WithResolver(directory.NewResolver(client, cfg.EnrichConcurrency, ctrlLogger)),
	)

	logger.Info("Starting", "base_url", client.BaseURL(), "page", cfg.StartPage)

	if *exportPath != "" {
		path := *exportPath
		if path == promptForPath {
			path, err = ui.PromptForExportPath("holocron-export.db")
			if err != nil {
				ui.PrintError(err.Error())
				os.Exit(1)
			}
		}

		filter := models.Filter{Search: *search, Homeworld: *homeworld, Film: *film, Species: *species}
		id, count, err := exportSnapshot(ctx, ctrl, path, cfg.StartPage, filter)
		if err != nil {
			logger.Error("Export failed", "path", path, "error", err)
			ui.PrintError(fmt.Sprintf("Export failed: %v", err))
			os.Exit(1)
		}
		ui.PrintSuccess(fmt.Sprintf("Exported %d records from page %d", count, cfg.StartPage))
		ui.PrintInfo(fmt.Sprintf("Snapshot %s written to %s", id, path))
		return
	}

	ctrl.SetSearchTerm(*search)
	ctrl.SetFilter(models.FilterHomeworld, *homeworld)
	ctrl.SetFilter(models.FilterFilm, *film)
	ctrl.SetFilter(models.FilterSpecies, *species)

	// Clear screen before launching the TUI (avoids a flash of the previous output)
	fmt.Print("\033[H\033[2J")

	if err := ui.RunPeopleBrowser(ctx, ctrl, logger, cfg.StartPage, cfg.ExportDir); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

// newLogger creates the file logger. The TUI owns the terminal, so logs
// never go to stdout or stderr; if the file cannot be opened logging is off.
func newLogger(cfg *config.Config) (*log.Logger, io.Closer) {
	level, _ := cfg.Level()

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Logging disabled: %v", err))
		return log.New(io.Discard), nopCloser{}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "HOLOCRON",
		Level:           level,
	})
	return logger, f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

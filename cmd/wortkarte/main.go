package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/wortkarte/wortkarte/internal/config"
	"github.com/wortkarte/wortkarte/internal/domain"
	"github.com/wortkarte/wortkarte/internal/gitsource"
	"github.com/wortkarte/wortkarte/internal/importer"
	"github.com/wortkarte/wortkarte/internal/settings"
	"github.com/wortkarte/wortkarte/internal/storage"
	"github.com/wortkarte/wortkarte/internal/translate"
	"github.com/wortkarte/wortkarte/internal/web"
)

func main() {
	// 1. Load configuration from flags, environment, and config file
	flags := config.Flags()
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 2. Open the stores
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	prefs, err := settings.Open(filepath.Join(cfg.DataDir, "settings.json"))
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}

	// 3. Run the optional startup deck import
	runImports(db, cfg)

	// 4. Wire the external collaborators, where keys are configured
	var translator web.Translator
	if cfg.DeepLKey != "" {
		translator = translate.NewDeepLClient(cfg.DeepLKey)
	}
	var examples web.ExampleGenerator
	if cfg.OpenAIKey != "" {
		examples = translate.NewExampleClient(cfg.OpenAIKey)
	}

	// 5. Serve
	server := web.NewServer(db, prefs, translator, examples)
	slog.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, server); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// runImports loads deck files from the configured local directory and git
// repository, if any. Import problems are logged, not fatal: a bad deck
// must not keep the app from starting.
func runImports(db *storage.DB, cfg *config.Config) {
	category := domain.Category(cfg.Import.DefaultCategory)

	if cfg.Import.Git != "" {
		checkout, err := gitsource.LocalPath(filepath.Join(cfg.DataDir, "repos"), cfg.Import.Git)
		if err != nil {
			slog.Error("invalid deck repository URL", "url", cfg.Import.Git, "error", err)
		} else if err := gitsource.Sync(cfg.Import.Git, checkout); err != nil {
			slog.Error("failed to sync deck repository", "url", cfg.Import.Git, "error", err)
		} else if _, err := importer.Run(db, checkout, category); err != nil {
			slog.Error("deck import from repository failed", "url", cfg.Import.Git, "error", err)
		}
	}

	if cfg.Import.Dir != "" {
		if _, err := importer.Run(db, cfg.Import.Dir, category); err != nil {
			slog.Error("deck import from directory failed", "dir", cfg.Import.Dir, "error", err)
		}
	}
}

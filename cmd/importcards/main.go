package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/config"
	"github.com/Roryrai/MTGplaytester/internal/deck"
	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/repository"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	replace    = flag.Bool("replace", false, "clear the card table before importing")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: importcards [-config FILE] [-replace] DECKLIST...")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.URL == "" {
		fmt.Fprintln(os.Stderr, "No database configured. Set database.url or PLAYTESTER_DATABASE_URL.")
		os.Exit(1)
	}

	logger, err := cfg.Logging.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	records, err := collect(flag.Args())
	if err != nil {
		logger.Fatal("failed to read decklists", zap.Error(err))
	}
	fmt.Printf("Found %d cards in %d decklists\n", len(records), flag.NArg())

	ctx := context.Background()
	repo, err := repository.Connect(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to create schema", zap.Error(err))
	}
	if existing, err := repo.Count(ctx); err == nil && existing > 0 {
		if !*replace {
			fmt.Printf("Database already contains %d cards; new cards are added alongside them\n", existing)
		} else if err := repo.Clear(ctx); err != nil {
			logger.Fatal("failed to clear cards", zap.Error(err))
		} else {
			fmt.Printf("Cleared %d existing cards\n", existing)
		}
	}

	start := time.Now()
	imported, failed, err := repo.Save(ctx, records)
	if err != nil {
		logger.Error("import stopped", zap.Error(err))
	}
	duration := time.Since(start)

	fmt.Printf("Imported %d cards in %s\n", imported, duration)
	if failed > 0 {
		fmt.Printf("Failed to import %d cards\n", failed)
	}
	if total, err := repo.Count(ctx); err == nil {
		fmt.Printf("Total cards in database: %d\n", total)
	}
	if err != nil || failed > 0 {
		os.Exit(1)
	}
}

// collect reads every decklist and returns one record per distinct card
// name. Short lines carry no card data and are skipped.
func collect(paths []string) ([]game.Record, error) {
	var records []game.Record
	seen := make(map[string]bool)
	for _, path := range paths {
		_, entries, err := deck.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, e := range entries {
			if e.Short || seen[e.Name] {
				continue
			}
			rec, err := e.Record()
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %w", path, e.Line, err)
			}
			seen[e.Name] = true
			records = append(records, rec)
		}
	}
	return records, nil
}

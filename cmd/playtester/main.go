package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/command"
	"github.com/Roryrai/MTGplaytester/internal/config"
	"github.com/Roryrai/MTGplaytester/internal/deck"
	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/render"
	"github.com/Roryrai/MTGplaytester/internal/repository"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	deckPath   = flag.String("deck", "", "decklist to play (semicolon list, or .yaml)")
	record     = flag.Bool("record", false, "record a replay from the start")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.Logging.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	path := *deckPath
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: playtester [-config FILE] [-record] -deck DECKLIST")
		os.Exit(2)
	}

	logger.Info("starting playtester",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("deck", path),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var resolver deck.Resolver
	if cfg.Database.Enabled {
		repo, err := repository.Connect(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("failed to connect to card database", zap.Error(err))
		}
		defer repo.Close()
		resolver = repo
	}

	loader := deck.NewLoader(cfg.Game, resolver, logger)
	d, err := loader.LoadFile(ctx, path)
	if err != nil {
		logger.Fatal("failed to load deck", zap.String("path", path), zap.Error(err))
	}

	g := game.NewGame(cfg.Game, logger)
	g.Load(d)

	recorder := game.NewReplayRecorder(logger, cfg.Replay.Dir)
	if *record {
		recorder.StartRecording(d.Name)
		recorder.Record(g)
	}

	dispatcher := command.NewDispatcher(g, d.Name, render.New(cfg.Render), command.Options{
		Loader:   loader,
		Recorder: recorder,
	}, logger)
	defer dispatcher.Close()

	if err := runREPL(ctx, dispatcher, os.Stdin, os.Stdout); err != nil {
		logger.Error("input error", zap.Error(err))
	}

	if recorder.IsRecording() {
		if err := recorder.Save(); err != nil {
			logger.Warn("failed to save replay", zap.Error(err))
		}
	}
	logger.Info("playtester stopped")
}

// runREPL draws the board and runs commands read from in until quit, end
// of input or cancellation.
func runREPL(ctx context.Context, d *command.Dispatcher, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, errc := readLines(ctx, in)

	fmt.Fprint(out, d.Board())
	for {
		fmt.Fprint(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-errc
			}
			line = l
		}

		res, err := d.Execute(ctx, line)
		if res.Board {
			fmt.Fprint(out, d.Board())
		}
		if res.Output != "" {
			fmt.Fprintln(out, res.Output)
		}
		if err != nil {
			fmt.Fprintln(out, describe(err))
		}
		if res.Quit {
			return nil
		}
	}
}

// describe turns an error into the line shown at the prompt.
func describe(err error) string {
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		return "Unknown command. Type help to list the commands."
	case errors.Is(err, game.ErrGameOver):
		return "The game is over. Type reset to play again."
	}
	return err.Error()
}

// readLines scans in on its own goroutine so a blocked read never holds up
// the prompt. The goroutine stops once ctx is done; errc then reports nil,
// or the scanner error at end of input.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

package deck

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/config"
	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// Resolver looks up the full record of a card named on a short line.
type Resolver interface {
	Resolve(ctx context.Context, name string) (game.Record, error)
}

// Loader builds decks from decklists.
type Loader struct {
	cfg      config.GameConfig
	resolver Resolver
	logger   *zap.Logger
}

// NewLoader creates a loader. resolver may be nil, in which case short
// lines are rejected.
func NewLoader(cfg config.GameConfig, resolver Resolver, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cfg: cfg, resolver: resolver, logger: logger}
}

// LoadFile reads a decklist from disk and builds it.
func (l *Loader) LoadFile(ctx context.Context, path string) (*game.Deck, error) {
	name, entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Build(ctx, name, entries)
}

// ReadFile parses a decklist file without building it. Files ending in
// .yaml or .yml are YAML; anything else is the semicolon format. The deck
// is named after the file unless the YAML names it.
func ReadFile(path string) (string, []Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open decklist: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		named, entries, err := ParseYAML(f)
		if named != "" {
			name = named
		}
		return name, entries, err
	default:
		entries, err := ParseText(f)
		return name, entries, err
	}
}

// LoadText builds a deck from a semicolon decklist.
func (l *Loader) LoadText(ctx context.Context, name string, r io.Reader) (*game.Deck, error) {
	entries, err := ParseText(r)
	if err != nil {
		return nil, err
	}
	return l.Build(ctx, name, entries)
}

// LoadYAML builds a deck from a YAML decklist.
func (l *Loader) LoadYAML(ctx context.Context, name string, r io.Reader) (*game.Deck, error) {
	named, entries, err := ParseYAML(r)
	if err != nil {
		return nil, err
	}
	if named != "" {
		name = named
	}
	return l.Build(ctx, name, entries)
}

// Build turns entries into a deck. A TRANSFORM or SPLIT card whose other
// half is an unlinked card already in the deck becomes that card's back
// face instead of a card of its own. Commander decks may hold only one
// copy of each card that is not a basic land. The deck must end up with
// exactly the configured number of cards.
func (l *Loader) Build(ctx context.Context, name string, entries []Entry) (*game.Deck, error) {
	d := &game.Deck{Name: name}
	commander := false
	for _, e := range entries {
		if !e.Commander {
			continue
		}
		if commander {
			return nil, &LineError{Line: e.Line, Err: fmt.Errorf("%w: second commander %s", ErrSyntax, e.Name)}
		}
		commander = true
	}

	for _, e := range entries {
		rec, err := l.record(ctx, e)
		if err != nil {
			return nil, &LineError{Line: e.Line, Err: err}
		}
		for i := 0; i < e.Count; i++ {
			card, err := game.NewCard(rec)
			if err != nil {
				return nil, &LineError{Line: e.Line, Err: err}
			}
			if rec.Link != game.LinkNone && linkToFront(d.Cards, card, rec.LinkedName) {
				continue
			}
			if commander && !card.IsType(rules.SupertypeBasic) && contains(d.Cards, card.Name()) {
				return nil, &LineError{Line: e.Line, Err: fmt.Errorf("%w: %s", ErrDuplicate, card.Name())}
			}
			if e.Commander {
				d.Commander = card
			}
			d.Cards = append(d.Cards, card)
		}
	}

	size := l.cfg.DeckSize
	if commander {
		size = l.cfg.CommanderDeckSize
	}
	if len(d.Cards) != size {
		return nil, fmt.Errorf("%w: deck list must be %d cards, you had %d", ErrSize, size, len(d.Cards))
	}

	tokens, emblems, err := game.BuildCatalog(d.Cards)
	if err != nil {
		return nil, fmt.Errorf("build token catalog: %w", err)
	}
	d.Tokens, d.Emblems = tokens, emblems

	l.logger.Info("decklist built",
		zap.String("deck", name),
		zap.Int("cards", len(d.Cards)),
		zap.Bool("commander", commander),
		zap.Int("tokens", len(tokens)),
		zap.Int("emblems", len(emblems)),
	)
	return d, nil
}

// record returns the card data for e, looking short entries up.
func (l *Loader) record(ctx context.Context, e Entry) (game.Record, error) {
	if !e.Short {
		return e.Record()
	}
	if l.resolver == nil {
		return game.Record{}, fmt.Errorf("%w: %s has no card data and no card database is configured", ErrUnresolved, e.Name)
	}
	rec, err := l.resolver.Resolve(ctx, e.Name)
	if err != nil {
		return game.Record{}, fmt.Errorf("%w: %s: %v", ErrUnresolved, e.Name, err)
	}
	l.logger.Debug("card resolved", zap.String("card", rec.Name))
	return rec, nil
}

// linkToFront makes back the back face of the first unlinked card named
// front.
func linkToFront(cards []*game.Card, back *game.Card, front string) bool {
	for _, c := range cards {
		if c.FrontName() == front && !c.Linked() && c.LinkBackFace(back) {
			return true
		}
	}
	return false
}

func contains(cards []*game.Card, name string) bool {
	for _, c := range cards {
		if c.Name() == name {
			return true
		}
	}
	return false
}

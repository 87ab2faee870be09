// Package repository stores card records in Postgres so decklists can name
// cards without spelling out every field.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/game/mana"
)

// ErrCardNotFound is returned when no card has the requested name.
var ErrCardNotFound = errors.New("card not found")

// batchSize is how many cards Save writes per transaction.
const batchSize = 1000

const schema = `
CREATE TABLE IF NOT EXISTS cards (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	card_type  TEXT NOT NULL DEFAULT '',
	mana_cost  TEXT NOT NULL DEFAULT '',
	power      TEXT NOT NULL DEFAULT '',
	toughness  TEXT NOT NULL DEFAULT '',
	rules_text TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS cards_lower_name_idx ON cards (lower(name));
`

// CardRepository reads and writes the cards table.
type CardRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Connect opens a pool on url and checks the connection.
func Connect(ctx context.Context, url string, logger *zap.Logger) (*CardRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("card database connected")
	return &CardRepository{pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (r *CardRepository) Close() { r.pool.Close() }

// EnsureSchema creates the cards table if it does not exist.
func (r *CardRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Clear deletes every stored card.
func (r *CardRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "TRUNCATE cards RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to clear cards: %w", err)
	}
	return nil
}

// Count returns the number of stored cards.
func (r *CardRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM cards").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return n, nil
}

// Resolve implements the decklist resolver by name lookup.
func (r *CardRepository) Resolve(ctx context.Context, name string) (game.Record, error) {
	return r.FindByName(ctx, name)
}

// FindByName returns the card whose name matches, ignoring case. When the
// name is stored more than once the first row wins.
func (r *CardRepository) FindByName(ctx context.Context, name string) (game.Record, error) {
	var row cardRow
	err := r.pool.QueryRow(ctx, `
		SELECT name, card_type, mana_cost, power, toughness, rules_text
		FROM cards
		WHERE lower(name) = lower($1)
		ORDER BY id
		LIMIT 1
	`, name).Scan(&row.Name, &row.CardType, &row.ManaCost, &row.Power, &row.Toughness, &row.RulesText)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.Record{}, fmt.Errorf("%w: %s", ErrCardNotFound, name)
	}
	if err != nil {
		return game.Record{}, fmt.Errorf("failed to query card %s: %w", name, err)
	}
	return row.record()
}

// Save inserts records in batches, one transaction per batch. A batch that
// fails to commit counts all its cards as failed.
func (r *CardRepository) Save(ctx context.Context, records []game.Record) (imported, failed int, err error) {
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		batch := records[i:end]

		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return imported, failed + len(records) - i, fmt.Errorf("failed to begin transaction: %w", err)
		}

		ok := 0
		for _, rec := range batch {
			row := rowFrom(rec)
			if _, err := tx.Exec(ctx, `
				INSERT INTO cards (name, card_type, mana_cost, power, toughness, rules_text)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, row.Name, row.CardType, row.ManaCost, row.Power, row.Toughness, row.RulesText); err != nil {
				// The transaction is aborted after a failed statement.
				r.logger.Warn("failed to insert card", zap.String("card", rec.Name), zap.Error(err))
				break
			}
			ok++
		}

		if ok < len(batch) {
			_ = tx.Rollback(ctx)
			failed += len(batch)
			continue
		}
		if err := tx.Commit(ctx); err != nil {
			r.logger.Warn("failed to commit batch", zap.Error(err))
			_ = tx.Rollback(ctx)
			failed += len(batch)
			continue
		}
		imported += ok
		r.logger.Debug("batch imported", zap.Int("imported", imported), zap.Int("total", len(records)))
	}
	return imported, failed, nil
}

// cardRow is a row of the cards table.
type cardRow struct {
	Name      string
	CardType  string
	ManaCost  string
	Power     string
	Toughness string
	RulesText string
}

// record converts a stored row into card fields. The card_type column holds
// the full type line, "Legendary Creature — Elf Warrior"; the mana cost is
// stored with braces.
func (row cardRow) record() (game.Record, error) {
	cost, err := mana.ParseBraces(row.ManaCost)
	if err != nil {
		return game.Record{}, &game.FormatError{Name: row.Name, Cost: row.ManaCost}
	}
	typ, subtype := splitCardType(row.CardType)
	return game.Record{
		Name:      row.Name,
		Cost:      cost,
		Type:      typ,
		Subtype:   subtype,
		Power:     row.Power,
		Toughness: row.Toughness,
		Text:      row.RulesText,
	}, nil
}

func rowFrom(rec game.Record) cardRow {
	return cardRow{
		Name:      rec.Name,
		CardType:  joinCardType(rec.Type, rec.Subtype),
		ManaCost:  toBraces(rec.Cost),
		Power:     rec.Power,
		Toughness: rec.Toughness,
		RulesText: rec.Text,
	}
}

var typeDashes = []string{" — ", " - "}

func splitCardType(cardType string) (string, string) {
	for _, dash := range typeDashes {
		if typ, sub, ok := strings.Cut(cardType, dash); ok {
			return strings.TrimSpace(typ), strings.TrimSpace(sub)
		}
	}
	return strings.TrimSpace(cardType), ""
}

func joinCardType(typ, subtype string) string {
	if subtype == "" {
		return typ
	}
	return typ + typeDashes[0] + subtype
}

// toBraces writes a compact cost ("2RR") in brace form ("{2}{R}{R}"). The
// digits after an optional X are one generic symbol.
func toBraces(cost string) string {
	if cost == "" || cost == mana.TransformSentinel {
		return ""
	}
	var b strings.Builder
	if rest, ok := strings.CutPrefix(cost, "X"); ok {
		b.WriteString("{X}")
		cost = rest
	}
	i := 0
	for i < len(cost) && cost[i] >= '0' && cost[i] <= '9' {
		i++
	}
	if i > 0 {
		b.WriteString("{" + cost[:i] + "}")
	}
	for _, r := range cost[i:] {
		b.WriteString("{" + string(r) + "}")
	}
	return b.String()
}

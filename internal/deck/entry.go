// Package deck reads decklists and turns them into game decks.
//
// A decklist line is semicolon separated:
//
//	number;name;cost;type;subtype;power;toughness;text
//	number;name;cost;type;subtype;power;toughness;text;TRANSFORM|SPLIT;other half
//	number;name
//
// The number may be the word Commander. The short form only names the card;
// the rest is looked up through a Resolver. Within the text, a backslash
// followed by a space starts a new line.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game"
)

var (
	// ErrSyntax is wrapped by errors for lines with the wrong shape.
	ErrSyntax = errors.New("invalid card syntax")
	// ErrCount is wrapped by errors for a card count below one.
	ErrCount = errors.New("invalid card count")
	// ErrDuplicate is wrapped when a commander deck has two of a non-basic card.
	ErrDuplicate = errors.New("duplicate card")
	// ErrSize is wrapped when the deck is not the required size.
	ErrSize = errors.New("wrong deck size")
	// ErrUnresolved is wrapped when a short line cannot be looked up.
	ErrUnresolved = errors.New("card not resolved")
)

// LineError ties a decklist error to its line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// Entry is one decklist line.
type Entry struct {
	Count     int    `yaml:"count"`
	Commander bool   `yaml:"commander"`
	Name      string `yaml:"name"`
	Cost      string `yaml:"cost"`
	Type      string `yaml:"type"`
	Subtype   string `yaml:"subtype"`
	Power     string `yaml:"power"`
	Toughness string `yaml:"toughness"`
	Text      string `yaml:"text"`
	Link      string `yaml:"link"`
	Other     string `yaml:"other"`

	// Short is set when only the count and name were given.
	Short bool `yaml:"-"`
	Line  int  `yaml:"-"`
}

// Record converts the entry into the fields a card is built from.
func (e Entry) Record() (game.Record, error) {
	rec := game.Record{
		Name:       e.Name,
		Cost:       e.Cost,
		Type:       e.Type,
		Subtype:    e.Subtype,
		Power:      e.Power,
		Toughness:  e.Toughness,
		Text:       e.Text,
		LinkedName: e.Other,
	}
	switch strings.ToUpper(e.Link) {
	case "":
	case "TRANSFORM":
		rec.Link = game.LinkTransform
	case "SPLIT":
		rec.Link = game.LinkSplit
	default:
		return rec, fmt.Errorf("%w for %s: unknown link %q", ErrSyntax, e.Name, e.Link)
	}
	return rec, nil
}

const commanderCount = "Commander"

// ParseText reads a semicolon decklist. Blank lines and lines starting
// with # are skipped.
func ParseText(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(strings.TrimSpace(text), "#") {
			continue
		}
		entry, err := parseLine(text)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		entry.Line = line
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read decklist: %w", err)
	}
	return entries, nil
}

func parseLine(text string) (Entry, error) {
	fields := strings.Split(text, ";")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var e Entry
	if len(fields) < 2 {
		return e, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	e.Name = fields[1]
	if fields[0] == commanderCount {
		e.Commander = true
		e.Count = 1
	} else {
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 1 {
			return e, fmt.Errorf("%w for %s", ErrCount, e.Name)
		}
		e.Count = n
	}

	switch len(fields) {
	case 2:
		e.Short = true
		return e, nil
	case 8, 10:
		e.Cost = fields[2]
		e.Type = fields[3]
		e.Subtype = fields[4]
		e.Power = fields[5]
		e.Toughness = fields[6]
		e.Text = fields[7]
		if len(fields) == 10 {
			e.Link = fields[8]
			e.Other = fields[9]
		}
		return e, nil
	}
	return e, fmt.Errorf("%w for %s", ErrSyntax, e.Name)
}

// Package command turns lines typed at the playtester prompt into game
// operations.
package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
	"github.com/Roryrai/MTGplaytester/internal/game/watchers"
	"github.com/Roryrai/MTGplaytester/internal/render"
)

// ErrUnknownCommand is returned for a command name nothing handles.
var ErrUnknownCommand = errors.New("unknown command")

// DeckLoader reads a decklist file into a deck.
type DeckLoader interface {
	LoadFile(ctx context.Context, path string) (*game.Deck, error)
}

// Options holds the optional collaborators of a Dispatcher.
type Options struct {
	// Loader enables the load command.
	Loader DeckLoader
	// Recorder enables the replay command and records every change.
	Recorder *game.ReplayRecorder
}

// Result is what a command produced.
type Result struct {
	// Output is text to show the user. It may be empty.
	Output string
	// Board is set when the board changed and should be drawn again.
	Board bool
	// Quit is set by the quit command.
	Quit bool
}

type handlerFunc func(d *Dispatcher, ctx context.Context, name string, args []string) (string, error)

type handler struct {
	run handlerFunc
	// mutates marks commands that change the game. They are undoable and
	// are followed by a refresh.
	mutates bool
	// board marks commands after which the board is redrawn.
	board bool
}

// allowedAfterWin can still run once a player has won.
var allowedAfterWin = map[string]bool{"reset": true, "quit": true, "view": true}

// Dispatcher runs commands against one game. It is not safe for
// concurrent use.
type Dispatcher struct {
	game     *game.GameState
	deck     string
	render   *render.Renderer
	loader   DeckLoader
	recorder *game.ReplayRecorder
	stats    *watchers.TurnStats
	logger   *zap.Logger
	handlers map[string]handler
}

// NewDispatcher creates a dispatcher for g, which is playing the deck
// named deck.
func NewDispatcher(g *game.GameState, deck string, r *render.Renderer, opts Options, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		game:     g,
		deck:     deck,
		render:   r,
		loader:   opts.Loader,
		recorder: opts.Recorder,
		stats:    watchers.Attach(g.Events()),
		logger:   logger,
	}
	d.handlers = map[string]handler{
		"attack":    {run: (*Dispatcher).attack, mutates: true},
		"bounce":    {run: (*Dispatcher).bounce, mutates: true},
		"cast":      {run: (*Dispatcher).play, mutates: true},
		"combat":    {run: (*Dispatcher).attack, mutates: true},
		"copy":      {run: (*Dispatcher).copy, mutates: true},
		"count":     {run: (*Dispatcher).count},
		"counters":  {run: (*Dispatcher).modify, mutates: true},
		"crack":     {run: (*Dispatcher).sacrifice, mutates: true},
		"discard":   {run: (*Dispatcher).discard, mutates: true},
		"do":        {run: (*Dispatcher).repeat, mutates: true},
		"draw":      {run: (*Dispatcher).draw, mutates: true},
		"emblem":    {run: (*Dispatcher).emblem, mutates: true},
		"end":       {run: (*Dispatcher).end, mutates: true},
		"exile":     {run: (*Dispatcher).exile, mutates: true},
		"facedown":  {run: (*Dispatcher).faceDown, mutates: true},
		"faceup":    {run: (*Dispatcher).faceUp, mutates: true},
		"fetch":     {run: (*Dispatcher).fetch, mutates: true},
		"help":      {run: (*Dispatcher).help},
		"keywords":  {run: (*Dispatcher).keywords},
		"kill":      {run: (*Dispatcher).kill, mutates: true},
		"load":      {run: (*Dispatcher).load, board: true},
		"mill":      {run: (*Dispatcher).mill, mutates: true},
		"morph":     {run: (*Dispatcher).morph, mutates: true},
		"move":      {run: (*Dispatcher).move, mutates: true},
		"mull":      {run: (*Dispatcher).mulligan, mutates: true},
		"next":      {run: (*Dispatcher).next, mutates: true},
		"p1":        {run: (*Dispatcher).stat, mutates: true},
		"p2":        {run: (*Dispatcher).stat, mutates: true},
		"play":      {run: (*Dispatcher).play, mutates: true},
		"plusone":   {run: (*Dispatcher).modify, mutates: true},
		"power":     {run: (*Dispatcher).modify, mutates: true},
		"quit":      {run: (*Dispatcher).quit},
		"replay":    {run: (*Dispatcher).replay},
		"reset":     {run: (*Dispatcher).reset, board: true},
		"sac":       {run: (*Dispatcher).sacrifice, mutates: true},
		"shuffle":   {run: (*Dispatcher).shuffle, mutates: true},
		"stats":     {run: (*Dispatcher).turnStats},
		"tap":       {run: (*Dispatcher).tap, mutates: true},
		"token":     {run: (*Dispatcher).token, mutates: true},
		"top":       {run: (*Dispatcher).top},
		"toughness": {run: (*Dispatcher).modify, mutates: true},
		"transform": {run: (*Dispatcher).transform, mutates: true},
		"undo":      {run: (*Dispatcher).undo, board: true},
		"untap":     {run: (*Dispatcher).untap, mutates: true},
		"view":      {run: (*Dispatcher).view},
	}
	return d
}

// Board draws the current board.
func (d *Dispatcher) Board() string {
	return d.render.Board(d.game)
}

// Close stops collecting turn statistics.
func (d *Dispatcher) Close() {
	d.stats.Detach()
}

// Execute runs one line of input. Errors are the game's named errors
// (*game.NotFoundError, *game.ZoneError, *game.ActionError,
// *game.SyntaxError), game.ErrGameOver, or ErrUnknownCommand; none of them
// leave the game half changed.
func (d *Dispatcher) Execute(ctx context.Context, line string) (Result, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{}, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	name, args, h, ok := d.lookup(name, args)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if d.game.GameOver() && !allowedAfterWin[name] {
		return Result{}, game.ErrGameOver
	}

	d.logger.Debug("command", zap.String("command", name), zap.Strings("args", args))
	if !h.mutates {
		out, err := h.run(d, ctx, name, args)
		if err != nil {
			return Result{}, err
		}
		return Result{Output: out, Board: h.board, Quit: name == "quit"}, nil
	}

	before := d.game.Checkpoint()
	out, err := h.run(d, ctx, name, args)
	if err != nil {
		// A repeated command can fail after earlier repetitions went through.
		d.game.Restore(before)
		d.game.DiscardCheckpoint()
		return Result{}, err
	}
	if d.game.Snapshot().Checksum() == before.Checksum() {
		d.game.DiscardCheckpoint()
		return Result{Output: out, Board: true}, nil
	}

	for _, dead := range d.game.Refresh() {
		d.logger.Debug("state-based action", zap.String("card", dead.Name()))
	}
	if d.recorder != nil {
		d.recorder.Record(d.game)
	}
	if winner, won := d.game.Winner(); won {
		out = joinOutput(out, fmt.Sprintf("Player %d wins.", int(winner)+1))
	}
	return Result{Output: out, Board: true}, nil
}

// lookup finds the handler for a command. Keyword names ("flying",
// "first strike") grant that keyword.
func (d *Dispatcher) lookup(name string, args []string) (string, []string, handler, bool) {
	if h, ok := d.handlers[name]; ok {
		return name, args, h, true
	}
	if (name == "first" || name == "double") && len(args) > 0 && strings.EqualFold(args[0], "strike") {
		name, args = name+" strike", args[1:]
	}
	if keyword := rules.Capitalize(name); rules.IsKeyword(keyword) {
		return name, args, handler{run: (*Dispatcher).grant, mutates: true}, true
	}
	return name, args, handler{}, false
}

// Commands lists every command name.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers)+1)
	for name := range d.handlers {
		names = append(names, name)
	}
	names = append(names, "<keyword>")
	sort.Strings(names)
	return names
}

func joinOutput(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimRight(p, "\n"); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}

package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// replayVersion is bumped whenever the file layout changes.
const replayVersion = 1

// Replay is a recorded session: one snapshot per command that changed the
// game, in order.
type Replay struct {
	SessionID    string
	Deck         string
	States       []*Snapshot
	CurrentIndex int
}

// NewReplay creates an empty replay for a deck.
func NewReplay(deck string) *Replay {
	return &Replay{
		SessionID: uuid.NewString(),
		Deck:      deck,
	}
}

// RecordState appends a snapshot.
func (r *Replay) RecordState(s *Snapshot) {
	r.States = append(r.States, s)
}

// Start rewinds to the first state.
func (r *Replay) Start() {
	r.CurrentIndex = 0
}

// Next returns the state at the cursor and moves past it, or nil at the end.
func (r *Replay) Next() *Snapshot {
	if r.CurrentIndex < len(r.States) {
		s := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return s
	}
	return nil
}

// Previous steps the cursor back and returns that state.
func (r *Replay) Previous() *Snapshot {
	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Skip moves the cursor by count, clamped to the recorded range.
func (r *Replay) Skip(count int) *Snapshot {
	if len(r.States) == 0 {
		return nil
	}
	i := r.CurrentIndex + count
	if i >= len(r.States) {
		i = len(r.States) - 1
	}
	if i < 0 {
		i = 0
	}
	r.CurrentIndex = i
	return r.States[i]
}

// Size returns the number of recorded states.
func (r *Replay) Size() int { return len(r.States) }

// StateAt returns the state at index, or nil when out of range.
func (r *Replay) StateAt(index int) *Snapshot {
	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}

// Path is where SaveToFile writes the replay inside directory.
func (r *Replay) Path(directory string) string {
	return filepath.Join(directory, r.SessionID+".replay")
}

// SaveToFile writes the replay as gzipped gob into directory.
func (r *Replay) SaveToFile(directory string) error {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(r.Path(directory))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := r.encode(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// encode writes the gzipped gob stream to w. Most of the compressed data
// only reaches w when the gzip writer is closed.
func (r *Replay) encode(w io.Writer) error {
	gzipWriter := gzip.NewWriter(w)
	encoder := gob.NewEncoder(gzipWriter)
	metadata := replayMetadata{
		SessionID:  r.SessionID,
		Deck:       r.Deck,
		Timestamp:  time.Now(),
		Version:    replayVersion,
		StateCount: len(r.States),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	for i, state := range r.States {
		if err := encoder.Encode(state); err != nil {
			return fmt.Errorf("failed to encode state %d: %w", i, err)
		}
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush replay: %w", err)
	}
	return nil
}

// LoadReplayFromFile reads a replay written by SaveToFile. Loaded states
// describe the board but cannot be restored into a game.
func LoadReplayFromFile(path string) (*Replay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)
	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	replay := &Replay{SessionID: metadata.SessionID, Deck: metadata.Deck}
	for i := 0; i < metadata.StateCount; i++ {
		var state Snapshot
		if err := decoder.Decode(&state); err != nil {
			return nil, fmt.Errorf("failed to decode state %d: %w", i, err)
		}
		replay.States = append(replay.States, &state)
	}
	return replay, nil
}

type replayMetadata struct {
	SessionID  string
	Deck       string
	Timestamp  time.Time
	Version    int
	StateCount int
}

// ReplayRecorder records a game's snapshots while enabled and saves them
// to a directory. An empty directory disables saving.
type ReplayRecorder struct {
	logger  *zap.Logger
	replay  *Replay
	enabled bool
	saveDir string
}

// NewReplayRecorder creates a stopped recorder.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{logger: logger, saveDir: saveDir}
}

// StartRecording begins a new replay for deck, discarding any unsaved one.
func (rr *ReplayRecorder) StartRecording(deck string) {
	rr.replay = NewReplay(deck)
	rr.enabled = true
	rr.logger.Info("started replay recording",
		zap.String("session_id", rr.replay.SessionID),
		zap.String("deck", deck),
	)
}

// StopRecording pauses recording without dropping what was recorded.
func (rr *ReplayRecorder) StopRecording() {
	rr.enabled = false
}

// IsRecording reports whether snapshots are being recorded.
func (rr *ReplayRecorder) IsRecording() bool { return rr.enabled && rr.replay != nil }

// Record snapshots g if recording is enabled.
func (rr *ReplayRecorder) Record(g *GameState) {
	if !rr.IsRecording() {
		return
	}
	rr.replay.RecordState(g.Snapshot())
	rr.logger.Debug("recorded replay state",
		zap.String("session_id", rr.replay.SessionID),
		zap.Int("state_count", rr.replay.Size()),
	)
}

// Replay returns the replay being recorded, if any.
func (rr *ReplayRecorder) Replay() *Replay { return rr.replay }

// Save writes the current replay to the save directory and forgets it.
func (rr *ReplayRecorder) Save() error {
	if rr.replay == nil {
		return fmt.Errorf("no replay recorded")
	}
	if rr.saveDir == "" {
		return fmt.Errorf("no replay directory configured")
	}
	replay := rr.replay
	if err := replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	rr.replay = nil
	rr.enabled = false
	rr.logger.Info("saved replay to disk",
		zap.String("session_id", replay.SessionID),
		zap.Int("state_count", replay.Size()),
		zap.String("path", replay.Path(rr.saveDir)),
	)
	return nil
}

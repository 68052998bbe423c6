package state

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tracker-tv/github-hygiene-bot/models"
)

const (
	DefaultDir = ".steg/state"
	EventsFile = "events.jsonl"
)

// Store is the append-only JSON lines event log of a working tree.
type Store struct {
	path string
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{path: filepath.Join(dir, EventsFile)}
}

// NewStoreAt uses the event log at file instead of <dir>/events.jsonl.
func NewStoreAt(file string) *Store {
	return &Store{path: file}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Append(events ...models.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encoding event: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing event log: %w", err)
	}

	log.Debug().Str("path", s.path).Int("events", len(events)).Msg("events appended")
	return nil
}

// Load reads every well-formed event. A missing log is empty; malformed
// lines are skipped.
func (s *Store) Load() ([]models.Event, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	defer f.Close()

	return decode(f)
}

func decode(r io.Reader) ([]models.Event, error) {
	events := []models.Event{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	skipped := 0
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev models.Event
		if line[0] != '{' || json.Unmarshal(line, &ev) != nil {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading event log: %w", err)
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("ignored malformed event lines")
	}
	return events, nil
}

// Checksum is the sha256 hex digest of the file at path, or nil when it
// cannot be read.
func Checksum(path string) *string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil
	}
	sum := hex.EncodeToString(h.Sum(nil))
	return &sum
}

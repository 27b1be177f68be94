package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"deepspire/pkg/game/state"
)

var (
	saveBucket = []byte("saves")
	saveKey    = []byte("current")
)

// ErrNoSave is returned by Load when no save exists
var ErrNoSave = errors.New("persist: no saved game")

// Store is a bbolt-backed save file
type Store struct {
	db *bolt.DB
}

// Open opens or creates the save database at path
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(saveBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("persist: init %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save snapshots the game and writes it under the current-save key
func (s *Store) Save(g *state.Game) error {
	snap, err := SnapshotGame(g)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: encode save: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(saveBucket).Put(saveKey, encoded)
	})
}

// Load reads the current save and rebuilds the game. A missing save
// returns ErrNoSave; a corrupt one returns a decode error. Callers fall
// back to a fresh game either way.
func (s *Store) Load() (*state.Game, error) {
	var encoded []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(saveBucket).Get(saveKey)
		if v != nil {
			encoded = append(encoded, v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if encoded == nil {
		return nil, ErrNoSave
	}

	var snap GameSnapshot
	if err := json.Unmarshal(encoded, &snap); err != nil {
		return nil, fmt.Errorf("persist: decode save: %w", err)
	}
	return RestoreGame(&snap)
}

// Clear removes the current save, if any
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(saveBucket).Delete(saveKey)
	})
}

// LoadOrNew loads the current save, falling back to a fresh game when
// the save is missing or unreadable
func LoadOrNew(path string, fresh func() *state.Game) *state.Game {
	store, err := Open(path)
	if err != nil {
		slog.Warn("save database unavailable, starting fresh", "path", path, "error", err)
		return fresh()
	}
	defer store.Close()

	g, err := store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSave) {
			slog.Warn("save unreadable, starting fresh", "path", path, "error", err)
		}
		return fresh()
	}
	return g
}

// DefaultSavePath returns the save location under the user config dir,
// creating the parent directory if needed
func DefaultSavePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "deepspire.db"
	}
	dir = filepath.Join(dir, "deepspire")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "deepspire.db"
	}
	return filepath.Join(dir, "save.db")
}

package configuration

import (
	"sync"

	"github.com/qdm12/reprint"
)

// Store holds the currently active configuration and hands out deep-copied
// snapshots of it. The engine reads one snapshot per tick; external
// collaborators (dashboard API, MQTT commands) replace the whole
// configuration atomically via Swap. A tick can therefore never observe a
// half-written configuration.
type Store struct {
	mu      sync.RWMutex
	current Configuration
}

func NewStore(initial Configuration) *Store {
	var copied Configuration
	if err := reprint.FromTo(&initial, &copied); err != nil {
		// reprint only fails on type mismatches, which cannot happen here
		copied = initial
	}
	return &Store{current: copied}
}

// Snapshot returns a deep copy of the active configuration.
func (s *Store) Snapshot() Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var copied Configuration
	if err := reprint.FromTo(&s.current, &copied); err != nil {
		copied = s.current
	}
	return copied
}

// Swap validates next and makes it the active configuration. On validation
// failure the previous configuration remains in force and is still served
// by Snapshot.
func (s *Store) Swap(next Configuration) error {
	if err := ValidateConfig(&next); err != nil {
		return err
	}

	var copied Configuration
	if err := reprint.FromTo(&next, &copied); err != nil {
		copied = next
	}

	s.mu.Lock()
	s.current = copied
	s.mu.Unlock()
	return nil
}

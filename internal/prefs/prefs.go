// Package prefs owns the process-wide language and accessibility preferences and
// notifies subscribers when they change.
package prefs

import (
	"sync"

	"github.com/Nadercr7/Shamel/internal/models"
)

// Font size bounds in pixels
const (
	MinFontSize     = 12
	MaxFontSize     = 24
	DefaultFontSize = 16
	fontSizeStep    = 2
)

// Snapshot is an immutable copy of the preferences
type Snapshot struct {
	Language     models.Language
	HighContrast bool
	FontSize     int
}

// Direction returns the text direction of the active language
func (s Snapshot) Direction() models.Direction {
	return s.Language.Direction()
}

// Store holds the preferences. Mutations go through its methods only.
type Store struct {
	mu          sync.RWMutex
	current     Snapshot
	subscribers map[int]chan Snapshot
	nextID      int
}

// NewStore creates a store with the given language and accessibility defaults
func NewStore(lang models.Language, highContrast bool, fontSize int) *Store {
	return &Store{
		current: Snapshot{
			Language:     lang,
			HighContrast: highContrast,
			FontSize:     clampFontSize(fontSize),
		},
		subscribers: make(map[int]chan Snapshot),
	}
}

// Get returns the current preferences
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Language returns the active language
func (s *Store) Language() models.Language {
	return s.Get().Language
}

// SetLanguage changes the active language. Subscribers are only notified on change.
func (s *Store) SetLanguage(lang models.Language) {
	s.update(func(snap *Snapshot) { snap.Language = lang })
}

// ToggleLanguage switches between English and Arabic
func (s *Store) ToggleLanguage() {
	s.update(func(snap *Snapshot) { snap.Language = snap.Language.Toggle() })
}

// ToggleHighContrast flips the high-contrast theme
func (s *Store) ToggleHighContrast() {
	s.update(func(snap *Snapshot) { snap.HighContrast = !snap.HighContrast })
}

// IncreaseFontSize grows the text size by one step, capped at MaxFontSize
func (s *Store) IncreaseFontSize() {
	s.update(func(snap *Snapshot) { snap.FontSize = clampFontSize(snap.FontSize + fontSizeStep) })
}

// DecreaseFontSize shrinks the text size by one step, floored at MinFontSize
func (s *Store) DecreaseFontSize() {
	s.update(func(snap *Snapshot) { snap.FontSize = clampFontSize(snap.FontSize - fontSizeStep) })
}

// Subscribe returns a channel receiving the latest snapshot after every change and a
// function that ends the subscription. Slow readers only ever see the newest snapshot.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

func (s *Store) update(mutate func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	mutate(&next)
	if next == s.current {
		return
	}
	s.current = next

	for _, ch := range s.subscribers {
		// drop the stale snapshot, if any, so the newest one always fits
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}

func clampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// Package dictionary holds the in-memory word dictionary loaded from the
// embedded database.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"strings"
	"sync"
)

var ErrAlreadyLoaded = errors.New("dictionary is already loaded")

// Entry is a dictionary word with its raw bilingual definition.
type Entry struct {
	Word             string
	Definition       string
	RelatedWords     []string
	ExampleSentences string
}

// Store keeps the words in two maps: canonical word to entry, and inflected
// form to canonical word. It is filled once by Load and read-only afterwards.
type Store struct {
	loadOnce sync.Once
	loaded   bool
	loadErr  error

	entries  map[string]Entry
	variants map[string]string
	words    []string
}

func NewStore() *Store {
	return &Store{
		entries:  make(map[string]Entry),
		variants: make(map[string]string),
	}
}

// NewStoreFromEntries builds a loaded store without a database.
func NewStoreFromEntries(entries []Entry) *Store {
	s := NewStore()
	s.loadOnce.Do(func() {
		s.fill(entries)
		s.loaded = true
	})
	return s
}

// Load reads every record from repo. On failure the store stays empty and
// the error is kept for LoadErr; lookups then miss.
func (s *Store) Load(ctx context.Context, repo WordRepository) error {
	err := ErrAlreadyLoaded
	s.loadOnce.Do(func() {
		records, findErr := repo.FindAll(ctx)
		if findErr != nil {
			s.loadErr = fmt.Errorf("repo.FindAll() > %w", findErr)
			err = s.loadErr
			return
		}
		entries := make([]Entry, 0, len(records))
		for _, record := range records {
			entries = append(entries, record.ToEntry())
		}
		s.fill(entries)
		s.loaded = true
		err = nil
	})
	return err
}

func (s *Store) fill(entries []Entry) {
	for _, entry := range entries {
		key := normalize(entry.Word)
		if key == "" {
			continue
		}
		if _, ok := s.entries[key]; !ok {
			s.words = append(s.words, key)
		}
		s.entries[key] = entry
	}
	for _, entry := range entries {
		canonical := normalize(entry.Word)
		if canonical == "" {
			continue
		}
		for _, variant := range entry.RelatedWords {
			variant = normalize(variant)
			if variant == "" || variant == canonical {
				continue
			}
			if existing, ok := s.variants[variant]; ok && existing != canonical {
				slog.Default().Debug("variant maps to multiple words, keeping the first",
					slog.String("variant", variant),
					slog.String("word", existing),
					slog.String("ignored", canonical),
				)
				continue
			}
			s.variants[variant] = canonical
		}
	}
	slices.Sort(s.words)
}

// Loaded reports whether Load completed successfully.
func (s *Store) Loaded() bool {
	return s.loaded
}

// LoadErr returns the error of a failed Load, if any.
func (s *Store) LoadErr() error {
	return s.loadErr
}

// Len returns the number of canonical words.
func (s *Store) Len() int {
	return len(s.entries)
}

// Words returns the canonical words in sorted order.
func (s *Store) Words() []string {
	return slices.Clone(s.words)
}

// Lookup finds a word by its canonical or inflected form, ignoring case and
// surrounding whitespace.
func (s *Store) Lookup(word string) (Entry, bool) {
	key := normalize(word)
	if key == "" {
		return Entry{}, false
	}
	if entry, ok := s.entries[key]; ok {
		return entry, true
	}
	canonical, ok := s.variants[key]
	if !ok {
		return Entry{}, false
	}
	entry, ok := s.entries[canonical]
	return entry, ok
}

// RandomEntries draws up to n distinct entries, skipping the words in exclude.
func (s *Store) RandomEntries(r *rand.Rand, n int, exclude ...string) []Entry {
	if n <= 0 || len(s.words) == 0 {
		return nil
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, word := range exclude {
		skip[normalize(word)] = struct{}{}
	}

	result := make([]Entry, 0, n)
	for _, i := range r.Perm(len(s.words)) {
		word := s.words[i]
		if _, ok := skip[word]; ok {
			continue
		}
		result = append(result, s.entries[word])
		if len(result) == n {
			break
		}
	}
	return result
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

package learning

import (
	"slices"
	"strings"
	"sync"
)

// FamiliarWords is the set of words the learner marked as already known.
// It lives for the process only. Safe for concurrent use.
type FamiliarWords struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

func NewFamiliarWords(words ...string) *FamiliarWords {
	f := &FamiliarWords{words: make(map[string]struct{})}
	for _, word := range words {
		f.Add(word)
	}
	return f
}

func (f *FamiliarWords) Add(word string) {
	key := strings.ToLower(strings.TrimSpace(word))
	if key == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.words[key] = struct{}{}
}

func (f *FamiliarWords) Remove(word string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.words, strings.ToLower(strings.TrimSpace(word)))
}

func (f *FamiliarWords) Contains(word string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.words[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// Filter returns the words not in the set, keeping their order.
func (f *FamiliarWords) Filter(words []string) []string {
	remaining := make([]string, 0, len(words))
	for _, word := range words {
		if f.Contains(word) {
			continue
		}
		remaining = append(remaining, word)
	}
	return remaining
}

// Words returns the set in sorted order.
func (f *FamiliarWords) Words() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	words := make([]string, 0, len(f.words))
	for word := range f.words {
		words = append(words, word)
	}
	slices.Sort(words)
	return words
}

// Package quiz builds the questions shown by each test view.
package quiz

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/vocadrill/internal/definition"
	"github.com/at-ishikawa/vocadrill/internal/dictionary"
	"github.com/at-ishikawa/vocadrill/internal/learning"
)

// TestQuestion is a single prompt for one word in one test.
type TestQuestion struct {
	Word             string
	ChineseText      string
	FullDefinition   string
	ExampleSentences string
}

// Builder turns a word batch into questions using the dictionary and the
// definition simplifier.
type Builder struct {
	store      *dictionary.Store
	simplifier *definition.Simplifier

	mu   sync.Mutex
	rand *rand.Rand
}

// NewBuilder creates a Builder. A nil r uses a time-seeded source.
func NewBuilder(store *dictionary.Store, simplifier *definition.Simplifier, r *rand.Rand) *Builder {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{
		store:      store,
		simplifier: simplifier,
		rand:       r,
	}
}

// LevelFor returns the definition level a test type prompts with.
func LevelFor(testType learning.TestType) definition.Level {
	switch testType {
	case learning.TestTypeWordToMeaningSelect, learning.TestTypeSpeechRecognition:
		return definition.LevelSimplified
	case learning.TestTypeWordMeaningMatch:
		return definition.LevelUltra
	default:
		return definition.LevelExtract
	}
}

// Build returns one question per word that has a usable definition, in random
// order. Words without one are dropped and logged.
func (b *Builder) Build(words []string, testType learning.TestType) []TestQuestion {
	level := LevelFor(testType)
	questions := make([]TestQuestion, 0, len(words))
	for _, word := range words {
		entry, ok := b.store.Lookup(word)
		if !ok {
			slog.Default().Info("word is not in the dictionary, skipping the question",
				slog.String("word", word),
				slog.String("test_type", string(testType)),
			)
			continue
		}
		text, ok := b.simplifier.Render(entry.Definition, level)
		if !ok || strings.TrimSpace(text) == "" {
			slog.Default().Info("word has no usable definition, skipping the question",
				slog.String("word", word),
				slog.String("test_type", string(testType)),
				slog.String("level", level.String()),
			)
			continue
		}

		fullDefinition, ok := definition.Extract(entry.Definition)
		if !ok {
			fullDefinition = entry.Definition
		}
		questions = append(questions, TestQuestion{
			Word:             word,
			ChineseText:      text,
			FullDefinition:   fullDefinition,
			ExampleSentences: entry.ExampleSentences,
		})
	}

	b.shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

func (b *Builder) shuffle(n int, swap func(i, j int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rand.Shuffle(n, swap)
}

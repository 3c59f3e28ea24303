package quiz

import (
	"slices"

	"github.com/at-ishikawa/vocadrill/internal/learning"
)

// Choice is one option of a multiple-choice question.
type Choice struct {
	Text      string
	IsCorrect bool
}

// IsMultipleChoice reports whether a test type shows options to pick from.
func IsMultipleChoice(testType learning.TestType) bool {
	switch testType {
	case learning.TestTypeWordToMeaningSelect,
		learning.TestTypeWordMeaningMatch,
		learning.TestTypeMeaningToWordSelect:
		return true
	default:
		return false
	}
}

// ShowsMeaningChoices reports whether the options are meanings (true) or
// words (false).
func ShowsMeaningChoices(testType learning.TestType) bool {
	return testType == learning.TestTypeWordToMeaningSelect ||
		testType == learning.TestTypeWordMeaningMatch
}

// Choices returns the correct answer and up to distractors other options
// drawn from random dictionary words, shuffled.
func (b *Builder) Choices(question TestQuestion, testType learning.TestType, distractors int) []Choice {
	meaning := ShowsMeaningChoices(testType)
	correct := question.Word
	if meaning {
		correct = question.ChineseText
	}
	choices := []Choice{{Text: correct, IsCorrect: true}}
	seen := []string{correct}

	b.mu.Lock()
	candidates := b.store.RandomEntries(b.rand, distractors*2, question.Word)
	b.mu.Unlock()

	level := LevelFor(testType)
	for _, entry := range candidates {
		if len(choices) > distractors {
			break
		}
		text := entry.Word
		if meaning {
			rendered, ok := b.simplifier.Render(entry.Definition, level)
			if !ok || rendered == "" {
				continue
			}
			text = rendered
		}
		if slices.Contains(seen, text) {
			continue
		}
		seen = append(seen, text)
		choices = append(choices, Choice{Text: text})
	}

	b.shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

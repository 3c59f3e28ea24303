package learning

import "slices"

// SessionLearningReport collects, per word, whether each test it appeared in
// was answered correctly. Words keep the order they were first recorded.
type SessionLearningReport struct {
	words   []string
	results map[string][]bool
}

// WordVerdict is the final outcome of one word for a session.
type WordVerdict struct {
	Word      string `yaml:"word"`
	IsCorrect bool   `yaml:"is_correct"`
	Attempts  int    `yaml:"attempts"`
}

func NewSessionLearningReport() SessionLearningReport {
	return SessionLearningReport{results: make(map[string][]bool)}
}

// Record returns a copy of the report with the correctness of each result
// appended under its word.
func (r SessionLearningReport) Record(results []WordTestResult) SessionLearningReport {
	next := r.Clone()
	for _, result := range results {
		if _, ok := next.results[result.Word]; !ok {
			next.words = append(next.words, result.Word)
		}
		next.results[result.Word] = append(next.results[result.Word], result.IsCorrect)
	}
	return next
}

func (r SessionLearningReport) Clone() SessionLearningReport {
	clone := SessionLearningReport{
		words:   slices.Clone(r.words),
		results: make(map[string][]bool, len(r.results)),
	}
	for word, entries := range r.results {
		clone.results[word] = slices.Clone(entries)
	}
	return clone
}

// Entries returns the recorded correctness sequence of word.
func (r SessionLearningReport) Entries(word string) []bool {
	return slices.Clone(r.results[word])
}

// Words returns every recorded word in first-recorded order.
func (r SessionLearningReport) Words() []string {
	return slices.Clone(r.words)
}

func (r SessionLearningReport) Len() int {
	return len(r.words)
}

// Verdicts returns one verdict per recorded word. A word passes only if all
// of its entries are true. Words without entries are left out.
func (r SessionLearningReport) Verdicts() []WordVerdict {
	verdicts := make([]WordVerdict, 0, len(r.words))
	for _, word := range r.words {
		entries := r.results[word]
		if len(entries) == 0 {
			continue
		}
		verdicts = append(verdicts, WordVerdict{
			Word:      word,
			IsCorrect: !slices.Contains(entries, false),
			Attempts:  len(entries),
		})
	}
	return verdicts
}

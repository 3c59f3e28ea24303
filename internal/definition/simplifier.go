// Package definition turns raw bilingual dictionary definitions into the
// Chinese prompts shown by quizzes.
//
// A raw definition embeds a Chinese section introduced by ChinesePrefix and
// optionally followed by a part-of-speech section introduced by
// PartOfSpeechMarker:
//
//	英文释义：a small domesticated carnivore 中文释义：1. 猫（家养）；猫科动物 2. 刻薄的女人 词性：n.
package definition

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
)

// ClauseSeparator joins simplified clauses.
const ClauseSeparator = "；"

var (
	chinesePrefixes      = []string{"中文释义：", "中文释义:"}
	partOfSpeechMarkers  = []string{"词性：", "词性:"}
	segmentPattern       = regexp.MustCompile(`\r?\n|\d+\s*[.、．]`)
	parentheticalPattern = regexp.MustCompile(`[（(][^（）()]*[）)]`)
	clausePattern        = regexp.MustCompile(`[,，;；]`)
	posTagPattern        = regexp.MustCompile(`^(?:n|v|adj|adv|prep|pron|conj|interj|int)\.\s+`)
)

// Extract returns the Chinese definition section of raw, trimmed.
// ok is false when raw is empty or has no Chinese section.
func Extract(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	start, prefix := indexAny(raw, chinesePrefixes)
	if start < 0 {
		return "", false
	}
	rest := raw[start+len(prefix):]
	if end, _ := indexAny(rest, partOfSpeechMarkers); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

// Simplify keeps the first clause of every sense in the Chinese section,
// dropping parenthetical asides, and joins them with ClauseSeparator.
func Simplify(raw string) (string, bool) {
	extracted, ok := Extract(raw)
	if !ok {
		return "", false
	}

	var clauses []string
	for _, segment := range segmentPattern.Split(extracted, -1) {
		segment = removeParentheticals(segment)
		for _, sense := range strings.Split(segment, ClauseSeparator) {
			clause := strings.TrimSpace(clausePattern.Split(sense, 2)[0])
			if clause == "" {
				continue
			}
			clauses = append(clauses, clause)
		}
	}
	if len(clauses) == 0 {
		return "", false
	}
	return strings.Join(clauses, ClauseSeparator), true
}

func removeParentheticals(s string) string {
	// Repeat so nested asides like （a（b）） are removed as well
	for {
		replaced := parentheticalPattern.ReplaceAllString(s, "")
		if replaced == s {
			return s
		}
		s = replaced
	}
}

func indexAny(s string, markers []string) (int, string) {
	index, found := -1, ""
	for _, marker := range markers {
		i := strings.Index(s, marker)
		if i >= 0 && (index < 0 || i < index) {
			index, found = i, marker
		}
	}
	return index, found
}

// Simplifier picks terse clauses at random. The zero value is not usable;
// create one with NewSimplifier.
type Simplifier struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSimplifier returns a Simplifier drawing from r, or from a time-seeded
// source when r is nil.
func NewSimplifier(r *rand.Rand) *Simplifier {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simplifier{rand: r}
}

// UltraSimplify returns one clause of a simplified definition, without its
// part-of-speech tag. The clause is chosen at random on every call.
// If no clause survives, simplified is returned unchanged.
func (s *Simplifier) UltraSimplify(simplified string) string {
	var candidates []string
	for _, clause := range strings.Split(simplified, ClauseSeparator) {
		clause = stripPartOfSpeech(strings.TrimSpace(clause))
		if clause == "" {
			continue
		}
		candidates = append(candidates, clause)
	}
	if len(candidates) == 0 {
		return simplified
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return candidates[s.rand.Intn(len(candidates))]
}

func stripPartOfSpeech(clause string) string {
	for {
		stripped := posTagPattern.ReplaceAllString(clause, "")
		if stripped == clause {
			return strings.TrimSpace(clause)
		}
		clause = stripped
	}
}

// Render returns raw at the requested level.
func (s *Simplifier) Render(raw string, level Level) (string, bool) {
	switch level {
	case LevelSimplified:
		return Simplify(raw)
	case LevelUltra:
		simplified, ok := Simplify(raw)
		if !ok {
			return "", false
		}
		return s.UltraSimplify(simplified), true
	default:
		return Extract(raw)
	}
}

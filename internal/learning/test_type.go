package learning

import "slices"

// TestType is one kind of quiz in a session sequence.
type TestType string

const (
	TestTypeWordToMeaningSelect    TestType = "word_to_meaning_select"
	TestTypeWordMeaningMatch       TestType = "word_meaning_match"
	TestTypeMeaningToWordSelect    TestType = "meaning_to_word_select"
	TestTypeChineseToEnglishSelect TestType = "chinese_to_english_select"
	TestTypeChineseToEnglishSpell  TestType = "chinese_to_english_spell"
	TestTypeListening              TestType = "listening"
	TestTypeSpeechRecognition      TestType = "speech_recognition"
)

var (
	newWordSequence = []TestType{
		TestTypeWordToMeaningSelect,
		TestTypeWordMeaningMatch,
		TestTypeMeaningToWordSelect,
		TestTypeChineseToEnglishSelect,
		TestTypeChineseToEnglishSpell,
		TestTypeListening,
		TestTypeSpeechRecognition,
	}
	reviewSequence = []TestType{
		TestTypeChineseToEnglishSpell,
		TestTypeListening,
		TestTypeSpeechRecognition,
	}
)

// NewWordSequence returns the quiz order for words seen for the first time.
func NewWordSequence() []TestType {
	return slices.Clone(newWordSequence)
}

// ReviewSequence returns the quiz order for spaced-repetition words.
func ReviewSequence() []TestType {
	return slices.Clone(reviewSequence)
}

// SequenceFor picks the sequence for a session kind.
func SequenceFor(isNewWordSession bool) []TestType {
	if isNewWordSession {
		return NewWordSequence()
	}
	return ReviewSequence()
}

func (t TestType) Valid() bool {
	return slices.Contains(newWordSequence, t)
}

// Title is a short human readable name.
func (t TestType) Title() string {
	switch t {
	case TestTypeWordToMeaningSelect:
		return "Choose the meaning"
	case TestTypeWordMeaningMatch:
		return "Match words and meanings"
	case TestTypeMeaningToWordSelect:
		return "Choose the word"
	case TestTypeChineseToEnglishSelect:
		return "Spell with letters"
	case TestTypeChineseToEnglishSpell:
		return "Type the word"
	case TestTypeListening:
		return "Listening"
	case TestTypeSpeechRecognition:
		return "Speaking"
	default:
		return string(t)
	}
}

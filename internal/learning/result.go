package learning

import "time"

// WordTestResult is one answer given in a test view. It is never modified
// after creation.
type WordTestResult struct {
	Word            string    `json:"word" yaml:"word"`
	ChineseExpected string    `json:"chinese_expected" yaml:"chinese_expected"`
	UserAnswer      string    `json:"user_answer" yaml:"user_answer"`
	IsCorrect       bool      `json:"is_correct" yaml:"is_correct"`
	TestType        TestType  `json:"test_type" yaml:"test_type"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
}

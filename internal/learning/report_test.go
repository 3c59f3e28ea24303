package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLearningReport_Verdicts(t *testing.T) {
	tests := []struct {
		name    string
		batches [][]WordTestResult
		want    []WordVerdict
	}{
		{
			name: "all correct passes and any incorrect fails",
			batches: [][]WordTestResult{
				{{Word: "cat", IsCorrect: true}, {Word: "dog", IsCorrect: true}},
				{{Word: "cat", IsCorrect: true}, {Word: "dog", IsCorrect: false}},
				{{Word: "dog", IsCorrect: true}},
			},
			want: []WordVerdict{
				{Word: "cat", IsCorrect: true, Attempts: 2},
				{Word: "dog", IsCorrect: false, Attempts: 3},
			},
		},
		{
			name:    "no results",
			batches: nil,
			want:    []WordVerdict{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewSessionLearningReport()
			for _, batch := range tt.batches {
				report = report.Record(batch)
			}
			assert.Equal(t, tt.want, report.Verdicts())
		})
	}
}

func TestSessionLearningReport_RecordDoesNotMutate(t *testing.T) {
	first := NewSessionLearningReport().Record([]WordTestResult{{Word: "cat", IsCorrect: true}})
	second := first.Record([]WordTestResult{{Word: "cat", IsCorrect: false}, {Word: "dog", IsCorrect: true}})

	assert.Equal(t, []bool{true}, first.Entries("cat"))
	assert.Equal(t, []string{"cat"}, first.Words())
	assert.Equal(t, []bool{true, false}, second.Entries("cat"))
	assert.Equal(t, []string{"cat", "dog"}, second.Words())
	assert.Equal(t, 2, second.Len())
}

func TestFamiliarWords(t *testing.T) {
	familiar := NewFamiliarWords("Cat", " dog ", "")

	assert.True(t, familiar.Contains("cat"))
	assert.True(t, familiar.Contains("DOG"))
	assert.False(t, familiar.Contains("bird"))
	assert.Equal(t, []string{"cat", "dog"}, familiar.Words())

	assert.Equal(t, []string{"bird"}, familiar.Filter([]string{"CAT", "bird", "Dog"}))
	assert.Empty(t, familiar.Filter([]string{"cat", "dog"}))

	familiar.Remove("CAT")
	assert.False(t, familiar.Contains("cat"))
}

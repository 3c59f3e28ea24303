package learning

// RoundEndAssessment tags the single verdict submitted per word at the end
// of a session.
const RoundEndAssessment = "round_end_assessment"

// WordStatusUpdate is the outcome of a word reported to the plan server.
type WordStatusUpdate struct {
	PlanID    int64  `json:"planId"`
	Word      string `json:"word"`
	IsCorrect bool   `json:"isCorrect"`
	TestType  string `json:"testType"`
}

package learning

// DailySession is the server's split of a plan's words for today.
type DailySession struct {
	NewWords         []string `json:"newWords"`
	ReviewWords      []string `json:"reviewWords"`
	IsNewWordPaused  bool     `json:"isNewWordPaused"`
	IsBacklogSession bool     `json:"isBacklogSession"`
}

// Batch returns the words to test and whether they are new words. New words
// come first unless paused or there are none.
func (d DailySession) Batch() ([]string, bool) {
	if !d.IsNewWordPaused && len(d.NewWords) > 0 {
		return d.NewWords, true
	}
	return d.ReviewWords, false
}

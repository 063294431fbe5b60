package model

// Evaluation is the static blueprint of a timed test. It is immutable once
// loaded into an attempt; questions are sorted by Order ascending.
type Evaluation struct {
	ID                  FlexID     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	TimeLimitMinutes    int        `json:"timeLimitMinutes"`
	PassingScorePercent int        `json:"passingScorePercent"`
	IsEnabled           bool       `json:"isEnabled"`
	Questions           []Question `json:"questions,omitempty"`
}

// Attemptable reports whether an attempt may start against this evaluation
func (e *Evaluation) Attemptable() bool {
	return e.IsEnabled && len(e.Questions) > 0
}

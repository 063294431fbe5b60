package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice" // one correct option, by text or index
	QuestionTypeTrueFalse      QuestionType = "true-false"      // literal "true"/"false", case-insensitive
	QuestionTypeShortAnswer    QuestionType = "short-answer"    // free text, substring-tolerant
)

// Question is one evaluable item belonging to an evaluation
type Question struct {
	ID            FlexID       `json:"id"`
	EvaluationID  FlexID       `json:"evaluationId"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options,omitempty"`       // multiple-choice only
	CorrectAnswer string       `json:"correctAnswer,omitempty"` // option text or index for multiple-choice
	Points        int          `json:"points"`
	Order         int          `json:"order"`
}

// QuestionView is the participant-facing projection of a question.
// The correct answer never leaves the service through it.
type QuestionView struct {
	ID      FlexID       `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	Points  int          `json:"points"`
	Order   int          `json:"order"`
}

// NewQuestionView strips grading data from a question
func NewQuestionView(q Question) QuestionView {
	return QuestionView{
		ID:      q.ID,
		Type:    q.Type,
		Prompt:  q.Prompt,
		Options: q.Options,
		Points:  q.Points,
		Order:   q.Order,
	}
}

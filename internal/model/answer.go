package model

// Answer is one user response to a question. At most one answer exists per
// question within an attempt; re-submission replaces the previous value.
type Answer struct {
	QuestionID FlexID `json:"questionId"`
	Value      string `json:"value"`
}

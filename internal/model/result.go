package model

// Result is the scored verdict of a completed attempt
type Result struct {
	EarnedPoints int  `json:"earnedPoints" bson:"earnedPoints"`
	TotalPoints  int  `json:"totalPoints" bson:"totalPoints"`
	Percentage   int  `json:"percentage" bson:"percentage"`
	Passed       bool `json:"passed" bson:"passed"`
}

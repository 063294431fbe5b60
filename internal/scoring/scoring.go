package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/fathsl/ranya-front-sub000/internal/model"
)

// Score grades a full answer set against an evaluation's questions and
// returns the verdict. Unanswered questions earn zero points; a question or
// answer whose shape matches no comparison rule is not credited. The function
// is total over its inputs and has no side effects.
func Score(questions []model.Question, answers map[string]string, passingScorePercent int) model.Result {
	earned, total := 0, 0
	for _, q := range questions {
		total += q.Points
		value, ok := answers[q.ID.String()]
		if !ok {
			continue
		}
		if credited(q, value) {
			earned += q.Points
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(earned) / float64(total)))
	}

	return model.Result{
		EarnedPoints: earned,
		TotalPoints:  total,
		Percentage:   percentage,
		Passed:       percentage >= passingScorePercent,
	}
}

func credited(q model.Question, value string) bool {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		return matchMultipleChoice(q.Options, q.CorrectAnswer, value)
	case model.QuestionTypeTrueFalse:
		return matchTrueFalse(q.CorrectAnswer, value)
	case model.QuestionTypeShortAnswer:
		return matchShortAnswer(q.CorrectAnswer, value)
	}
	return false
}

// matchMultipleChoice accepts both the literal option text and its stringified
// index, for the correct answer and the submission independently. Literal
// equality wins; otherwise both sides resolve to an option index and must
// agree on a resolved (non -1) index.
func matchMultipleChoice(options []string, correct, submitted string) bool {
	correct = strings.TrimSpace(correct)
	submitted = strings.TrimSpace(submitted)
	if correct != "" && correct == submitted {
		return true
	}
	ci := resolveOptionIndex(options, correct)
	si := resolveOptionIndex(options, submitted)
	return ci != -1 && ci == si
}

// resolveOptionIndex maps a value to an option index. Integer strings are
// used as the index directly; anything else matches option text
// case-insensitively. Returns -1 when unresolved.
func resolveOptionIndex(options []string, s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return -1
		}
		return n
	}
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), s) {
			return i
		}
	}
	return -1
}

func matchTrueFalse(correct, submitted string) bool {
	correct = strings.ToLower(strings.TrimSpace(correct))
	submitted = strings.ToLower(strings.TrimSpace(submitted))
	if submitted != "true" && submitted != "false" {
		return false
	}
	return correct == submitted
}

// matchShortAnswer normalizes both strings and credits equality or a
// substring match in either direction. The leniency is deliberate.
func matchShortAnswer(correct, submitted string) bool {
	correct = strings.ToLower(strings.TrimSpace(correct))
	submitted = strings.ToLower(strings.TrimSpace(submitted))
	if correct == "" || submitted == "" {
		return false
	}
	if correct == submitted {
		return true
	}
	return strings.Contains(correct, submitted) || strings.Contains(submitted, correct)
}

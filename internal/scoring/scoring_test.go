package scoring

import (
	"testing"

	"github.com/fathsl/ranya-front-sub000/internal/model"
)

func mcq(id string, options []string, correct string, points int) model.Question {
	return model.Question{
		ID:            model.FlexID(id),
		Type:          model.QuestionTypeMultipleChoice,
		Options:       options,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func TestScoreMultipleChoice(t *testing.T) {
	options := []string{"Paris", "London", "Berlin"}

	cases := []struct {
		name     string
		correct  string
		value    string
		credited bool
	}{
		{"literal match", "London", "London", true},
		{"index vs index", "1", "1", true},
		{"index correct, literal value", "1", "London", true},
		{"literal correct, index value", "London", "1", true},
		{"case-insensitive option text", "london", "LONDON", true},
		{"whitespace tolerated", " London ", "London", true},
		{"wrong option", "London", "Paris", false},
		{"wrong index", "1", "2", false},
		{"unresolvable value", "London", "Madrid", false},
		{"unresolvable correct answer", "Madrid", "Madrid", true}, // literal equality still wins
		{"both unresolved never credit", "Rome", "Madrid", false},
		{"empty value", "London", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := mcq("q1", options, c.correct, 1)
			r := Score([]model.Question{q}, map[string]string{"q1": c.value}, 0)
			if got := r.EarnedPoints == 1; got != c.credited {
				t.Fatalf("correct=%q value=%q: credited=%v, want %v", c.correct, c.value, got, c.credited)
			}
		})
	}
}

func TestScoreMultipleChoiceWithoutOptions(t *testing.T) {
	// Malformed question: no options. Index resolution fails on both sides,
	// scoring still terminates with zero credit.
	q := mcq("q1", nil, "2", 3)
	r := Score([]model.Question{q}, map[string]string{"q1": "London"}, 0)
	if r.EarnedPoints != 0 || r.TotalPoints != 3 {
		t.Fatalf("earned=%d total=%d, want 0/3", r.EarnedPoints, r.TotalPoints)
	}
}

func TestScoreTrueFalse(t *testing.T) {
	cases := []struct {
		correct, value string
		credited       bool
	}{
		{"true", "true", true},
		{"true", "TRUE", true},
		{"false", "False", true},
		{"true", "false", false},
		{"false", "true", false},
		{"true", "yes", false},
		{"true", "", false},
	}

	for _, c := range cases {
		q := model.Question{ID: "q1", Type: model.QuestionTypeTrueFalse, CorrectAnswer: c.correct, Points: 1}
		r := Score([]model.Question{q}, map[string]string{"q1": c.value}, 0)
		if got := r.EarnedPoints == 1; got != c.credited {
			t.Fatalf("correct=%q value=%q: credited=%v, want %v", c.correct, c.value, got, c.credited)
		}
	}
}

func TestScoreShortAnswer(t *testing.T) {
	cases := []struct {
		correct, value string
		credited       bool
	}{
		{"photosynthesis", "photosynthesis", true},
		{"Photosynthesis", "  photosynthesis  ", true},
		{"photosynthesis", "photo", true},     // submission inside reference
		{"cat", "category", true},             // reference inside submission, lenient on purpose
		{"photosynthesis", "osmosis", false},
		{"photosynthesis", "", false},
		{"", "anything", false},
	}

	for _, c := range cases {
		q := model.Question{ID: "q1", Type: model.QuestionTypeShortAnswer, CorrectAnswer: c.correct, Points: 1}
		r := Score([]model.Question{q}, map[string]string{"q1": c.value}, 0)
		if got := r.EarnedPoints == 1; got != c.credited {
			t.Fatalf("correct=%q value=%q: credited=%v, want %v", c.correct, c.value, got, c.credited)
		}
	}
}

func TestScoreAggregation(t *testing.T) {
	questions := []model.Question{
		mcq("q1", []string{"A", "B"}, "0", 1),
		{ID: "q2", Type: model.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
		{ID: "q3", Type: model.QuestionTypeShortAnswer, CorrectAnswer: "go", Points: 2},
	}

	t.Run("full marks", func(t *testing.T) {
		r := Score(questions, map[string]string{"q1": "A", "q2": "true", "q3": "golang"}, 50)
		if r.EarnedPoints != 4 || r.TotalPoints != 4 || r.Percentage != 100 || !r.Passed {
			t.Fatalf("unexpected result: %+v", r)
		}
	})

	t.Run("partial answers count as zero", func(t *testing.T) {
		r := Score(questions, map[string]string{"q2": "true"}, 50)
		if r.EarnedPoints != 1 || r.TotalPoints != 4 || r.Percentage != 25 || r.Passed {
			t.Fatalf("unexpected result: %+v", r)
		}
	})

	t.Run("percentage rounds", func(t *testing.T) {
		qs := []model.Question{
			{ID: "q1", Type: model.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
			{ID: "q2", Type: model.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
			{ID: "q3", Type: model.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
		}
		r := Score(qs, map[string]string{"q1": "true"}, 0)
		if r.Percentage != 33 {
			t.Fatalf("percentage=%d, want 33", r.Percentage)
		}
		r = Score(qs, map[string]string{"q1": "true", "q2": "true"}, 0)
		if r.Percentage != 67 {
			t.Fatalf("percentage=%d, want 67", r.Percentage)
		}
	})

	t.Run("pass threshold is inclusive", func(t *testing.T) {
		qs := []model.Question{
			{ID: "q1", Type: model.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
			{ID: "q2", Type: model.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
		}
		r := Score(qs, map[string]string{"q1": "true"}, 50)
		if r.Percentage != 50 || !r.Passed {
			t.Fatalf("unexpected result: %+v", r)
		}
	})

	t.Run("no questions yields zero percentage", func(t *testing.T) {
		r := Score(nil, map[string]string{"ghost": "true"}, 0)
		if r.EarnedPoints != 0 || r.TotalPoints != 0 || r.Percentage != 0 {
			t.Fatalf("unexpected result: %+v", r)
		}
	})

	t.Run("answers to unknown questions are ignored", func(t *testing.T) {
		r := Score(questions, map[string]string{"ghost": "true"}, 0)
		if r.EarnedPoints != 0 || r.TotalPoints != 4 {
			t.Fatalf("unexpected result: %+v", r)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		answers := map[string]string{"q1": "B", "q2": "false", "q3": "go"}
		first := Score(questions, answers, 40)
		for i := 0; i < 10; i++ {
			if got := Score(questions, answers, 40); got != first {
				t.Fatalf("result changed across runs: %+v vs %+v", got, first)
			}
		}
	})
}

func TestScoreEndToEndScenario(t *testing.T) {
	questions := []model.Question{
		mcq("q1", []string{"A", "B"}, "0", 1),
		{ID: "q2", Type: model.QuestionTypeTrueFalse, CorrectAnswer: "true", Points: 1},
	}

	passing := Score(questions, map[string]string{"q1": "A", "q2": "true"}, 50)
	if passing.EarnedPoints != 2 || passing.TotalPoints != 2 || passing.Percentage != 100 || !passing.Passed {
		t.Fatalf("passing scenario: %+v", passing)
	}

	failing := Score(questions, map[string]string{"q1": "B", "q2": "false"}, 50)
	if failing.EarnedPoints != 0 || failing.Percentage != 0 || failing.Passed {
		t.Fatalf("failing scenario: %+v", failing)
	}
}

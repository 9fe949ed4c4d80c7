// Package personality implements the 25-question personality scorer.
// It is pure computation with no side effects: the service layer persists
// the result on the user, the scorer only produces it.
package personality

import (
	"fmt"

	"github.com/amehta/tripmates/internal/domain"
)

// QuestionCount is the fixed length of the questionnaire. The 25 answers
// are five contiguous blocks of five, one block per Big Five trait, in
// the order extraversion, neuroticism, agreeableness, conscientiousness,
// openness.
const QuestionCount = 25

// Result is the scorer output: the winning category plus the five raw
// trait totals, both persisted on the user.
type Result struct {
	Category domain.PersonalityCategory
	Scores   domain.TraitScores
}

// Score maps 25 questionnaire answers to a personality category.
//
// Each trait total is the sum of its block of five answers. Category
// scores are fixed linear combinations of the trait totals; the strictly
// greatest score wins, and ties break to the earliest category in
// domain.PersonalityCategories order.
//
// Returns domain.ErrValidation if the answer count is not exactly 25.
// Per-answer range checks ([1,5]) are the HTTP layer's concern.
func Score(responses []int) (Result, error) {
	if len(responses) != QuestionCount {
		return Result{}, fmt.Errorf("%w: expected %d responses, got %d",
			domain.ErrValidation, QuestionCount, len(responses))
	}

	block := func(start int) int {
		total := 0
		for _, v := range responses[start : start+5] {
			total += v
		}
		return total
	}

	scores := domain.TraitScores{
		Extraversion:      block(0),
		Neuroticism:       block(5),
		Agreeableness:     block(10),
		Conscientiousness: block(15),
		Openness:          block(20),
	}

	e := float64(scores.Extraversion)
	n := float64(scores.Neuroticism)
	a := float64(scores.Agreeableness)
	c := float64(scores.Conscientiousness)
	o := float64(scores.Openness)

	// Weighted category scores, indexed in enumeration order.
	weighted := []float64{
		0.5*c + 0.3*e + 0.2*(25-n), // Strategic Leader
		0.5*e + 0.3*a + 0.2*o,      // Expressive Connector
		0.5*o + 0.3*c + 0.2*(25-e), // Independent Thinker
		0.5*a + 0.3*n + 0.2*c,      // Resilient Caregiver
		0.5*c + 0.3*(25-a) + 0.2*n, // Tactical Realist
	}

	// Strict > keeps the earliest category on ties.
	best := 0
	for i := 1; i < len(weighted); i++ {
		if weighted[i] > weighted[best] {
			best = i
		}
	}

	return Result{
		Category: domain.PersonalityCategories()[best],
		Scores:   scores,
	}, nil
}

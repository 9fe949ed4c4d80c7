package personality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/personality"
)

// responsesFor builds a 25-answer slice from one value per trait block,
// in the block order E, N, A, C, O.
func responsesFor(e, n, a, c, o int) []int {
	out := make([]int, 0, 25)
	for _, v := range []int{e, n, a, c, o} {
		for i := 0; i < 5; i++ {
			out = append(out, v)
		}
	}
	return out
}

func TestScore_WrongCount(t *testing.T) {
	_, err := personality.Score(make([]int, 24))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = personality.Score(make([]int, 26))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = personality.Score(nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// TestScore_WorkedExample pins the documented reference case:
// E=25, N=5, A=15, C=25, O=15 gives Strategic Leader a score of
// 0.5·25 + 0.3·25 + 0.2·20 = 24.5, the maximum.
func TestScore_WorkedExample(t *testing.T) {
	responses := []int{
		5, 5, 5, 5, 5, // extraversion
		1, 1, 1, 1, 1, // neuroticism
		3, 3, 3, 3, 3, // agreeableness
		5, 5, 5, 5, 5, // conscientiousness
		3, 3, 3, 3, 3, // openness
	}

	got, err := personality.Score(responses)

	require.NoError(t, err)
	assert.Equal(t, domain.StrategicLeader, got.Category)
	assert.Equal(t, domain.TraitScores{
		Extraversion:      25,
		Neuroticism:       5,
		Agreeableness:     15,
		Conscientiousness: 25,
		Openness:          15,
	}, got.Scores)
}

// TestScore_TieBreaksToFirstCategory verifies that equal category scores
// resolve to the earliest category in enumeration order. All-equal answers
// give every trait the same total, which ties Strategic Leader and
// Tactical Realist (both 0.5·C plus symmetric terms) among others.
func TestScore_TieBreaksToFirstCategory(t *testing.T) {
	// All traits = 15: SL = 7.5+4.5+2 = 14, EC = 7.5+4.5+3 = 15,
	// IT = 7.5+4.5+2 = 14, RC = 7.5+4.5+3 = 15, TR = 7.5+3+3 = 13.5.
	// EC and RC tie at 15; Expressive Connector comes first.
	got, err := personality.Score(responsesFor(3, 3, 3, 3, 3))

	require.NoError(t, err)
	assert.Equal(t, domain.ExpressiveConnector, got.Category)
}

// TestScore_AlwaysOneOfFive sweeps uniform answer grids and checks the
// output is always a known category with trait totals in [5,25].
func TestScore_AlwaysOneOfFive(t *testing.T) {
	known := map[domain.PersonalityCategory]bool{}
	for _, c := range domain.PersonalityCategories() {
		known[c] = true
	}

	for e := 1; e <= 5; e++ {
		for n := 1; n <= 5; n++ {
			for a := 1; a <= 5; a++ {
				got, err := personality.Score(responsesFor(e, n, a, 6-e, 6-n))
				require.NoError(t, err)
				assert.True(t, known[got.Category], "unknown category %q", got.Category)

				for _, total := range []int{
					got.Scores.Extraversion,
					got.Scores.Neuroticism,
					got.Scores.Agreeableness,
					got.Scores.Conscientiousness,
					got.Scores.Openness,
				} {
					assert.GreaterOrEqual(t, total, 5)
					assert.LessOrEqual(t, total, 25)
				}
			}
		}
	}
}

// TestScore_HighOpennessPicksIndependentThinker exercises a non-trivial
// winner: low extraversion plus maximal openness favors the 0.5·O +
// 0.3·C + 0.2·(25−E) formula.
func TestScore_HighOpennessPicksIndependentThinker(t *testing.T) {
	got, err := personality.Score(responsesFor(1, 1, 1, 3, 5))

	require.NoError(t, err)
	assert.Equal(t, domain.IndependentThinker, got.Category)
}

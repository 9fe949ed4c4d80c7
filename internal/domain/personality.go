package domain

// PersonalityCategory is one of the five fixed labels assigned by the
// personality scorer. A user's category is nil until they complete the
// 25-question test.
type PersonalityCategory string

// The five categories, in scoring enumeration order. Ties between category
// scores break to the earliest entry in this order.
const (
	StrategicLeader     PersonalityCategory = "Strategic Leader"
	ExpressiveConnector PersonalityCategory = "Expressive Connector"
	IndependentThinker  PersonalityCategory = "Independent Thinker"
	ResilientCaregiver  PersonalityCategory = "Resilient Caregiver"
	TacticalRealist     PersonalityCategory = "Tactical Realist"
)

// PersonalityCategories returns the five categories in enumeration order.
func PersonalityCategories() []PersonalityCategory {
	return []PersonalityCategory{
		StrategicLeader,
		ExpressiveConnector,
		IndependentThinker,
		ResilientCaregiver,
		TacticalRealist,
	}
}

// TraitScores holds the five raw Big Five trait totals produced by the
// personality test. Each is the sum of five answers in [1,5], so each
// total is in [5,25].
type TraitScores struct {
	Extraversion      int `json:"extraversion"`
	Neuroticism       int `json:"neuroticism"`
	Agreeableness     int `json:"agreeableness"`
	Conscientiousness int `json:"conscientiousness"`
	Openness          int `json:"openness"`
}

package scoring

import "github.com/claimconnect/leadcore/internal/entity"

// surgeryMultiplier scales both ends of the base range when the lead had
// surgery. Lost wages are added afterwards, unmultiplied.
const surgeryMultiplier = 5

type dollarRange struct {
	low, high int
}

var baseEstimate = map[entity.InjuryType]dollarRange{
	entity.InjurySoftTissue: {5000, 15000},
	entity.InjuryWhiplash:   {10000, 25000},
	entity.InjuryBrokenBone: {15000, 50000},
	entity.InjuryBackInjury: {25000, 75000},
	entity.InjuryBurn:       {25000, 100000},
	entity.InjuryInternal:   {30000, 100000},
	entity.InjuryAmputation: {75000, 250000},
	entity.InjurySpinal:     {50000, 200000},
	entity.InjuryTBI:        {50000, 200000},
}

// Estimate returns the settlement range in whole dollars.
func Estimate(a entity.QuizAnswers) (low, high int) {
	base := baseEstimate[a.InjuryType]
	low, high = base.low, base.high

	if a.HadSurgery {
		low *= surgeryMultiplier
		high *= surgeryMultiplier
	}

	wages := a.LostWages
	if wages < 0 {
		wages = 0
	}
	low += wages
	high += wages

	return low, high
}

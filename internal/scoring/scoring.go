// Package scoring is the pure classification engine. It has no dependencies
// beyond entity and no side effects: the same answers always produce the same
// score, tier and estimate.
package scoring

import "github.com/claimconnect/leadcore/internal/entity"

const (
	hotThreshold  = 85
	warmThreshold = 45
)

// injuryPoints is an ordinal severity scale.
var injuryPoints = map[entity.InjuryType]int{
	entity.InjurySoftTissue: 10,
	entity.InjuryWhiplash:   15,
	entity.InjuryBrokenBone: 25,
	entity.InjuryBackInjury: 30,
	entity.InjuryBurn:       35,
	entity.InjuryInternal:   40,
	entity.InjuryAmputation: 45,
	entity.InjurySpinal:     50,
	entity.InjuryTBI:        50,
}

// Score adds up independent factor contributions. Factors never subtract.
func Score(a entity.QuizAnswers) int {
	score := injuryPoints[a.InjuryType]

	if a.HadSurgery {
		score += 40
	}
	if a.Hospitalized {
		score += 20
	}
	if a.InTreatment {
		score += 10
	}

	if a.MissedWork {
		score += 10
		// tiered bonus, higher band only
		switch {
		case a.DaysMissed > 30:
			score += 15
		case a.DaysMissed > 7:
			score += 10
		}
	}

	score += wagePoints(a.LostWages)

	switch a.Insurance {
	case entity.InsuranceNotContacted:
		score += 10
	case entity.InsuranceContacted:
		score += 5
	}

	switch a.Fault {
	case entity.FaultNone:
		score += 10
	case entity.FaultPartial:
		score += 5
	}

	switch {
	case a.MonthsSince <= 6:
		score += 10
	case a.MonthsSince <= 12:
		score += 5
	}

	return score
}

func wagePoints(wages int) int {
	switch {
	case wages >= 50000:
		return 25
	case wages >= 25000:
		return 20
	case wages >= 10000:
		return 15
	case wages >= 5000:
		return 10
	case wages >= 1000:
		return 5
	default:
		return 0
	}
}

// TierFor maps a score to its tier. Boundaries are inclusive: 85 is HOT,
// 45 is WARM.
func TierFor(score int) entity.Tier {
	switch {
	case score >= hotThreshold:
		return entity.TierHot
	case score >= warmThreshold:
		return entity.TierWarm
	default:
		return entity.TierCold
	}
}

// Classify runs Score and TierFor in one call.
func Classify(a entity.QuizAnswers) (int, entity.Tier) {
	s := Score(a)
	return s, TierFor(s)
}

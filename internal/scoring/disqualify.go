package scoring

import "github.com/claimconnect/leadcore/internal/entity"

type DisqualifyReason string

const (
	ReasonHasAttorney    DisqualifyReason = "has_attorney"
	ReasonFullyAtFault   DisqualifyReason = "fully_at_fault"
	ReasonIncidentTooOld DisqualifyReason = "incident_too_old"
	ReasonNoTreatment    DisqualifyReason = "no_treatment"
)

// statute-of-limitations cutoff
const maxIncidentAgeMonths = 36

// Disqualify runs before scoring. A disqualified submission is never
// persisted as a lead.
func Disqualify(a entity.QuizAnswers) (DisqualifyReason, bool) {
	if a.HasAttorney {
		return ReasonHasAttorney, true
	}
	if a.Fault == entity.FaultFull {
		return ReasonFullyAtFault, true
	}
	if a.MonthsSince > maxIncidentAgeMonths {
		return ReasonIncidentTooOld, true
	}
	if !a.ReceivedTreatment {
		return ReasonNoTreatment, true
	}
	return "", false
}

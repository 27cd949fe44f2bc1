package entity

type FunnelSource string

const (
	SourceFunnelA FunnelSource = "funnel-a"
	SourceFunnelB FunnelSource = "funnel-b"
)

type IncidentType string

const (
	IncidentCarAccident   IncidentType = "car_accident"
	IncidentTruckAccident IncidentType = "truck_accident"
	IncidentMotorcycle    IncidentType = "motorcycle_accident"
	IncidentSlipAndFall   IncidentType = "slip_and_fall"
	IncidentWorkplace     IncidentType = "workplace"
	IncidentPedestrian    IncidentType = "pedestrian"
	IncidentOther         IncidentType = "other"
)

type InjuryType string

const (
	InjurySoftTissue InjuryType = "soft_tissue"
	InjuryWhiplash   InjuryType = "whiplash"
	InjuryBrokenBone InjuryType = "broken_bone"
	InjuryBackInjury InjuryType = "back_injury"
	InjuryBurn       InjuryType = "burn"
	InjuryInternal   InjuryType = "internal"
	InjuryAmputation InjuryType = "amputation"
	InjurySpinal     InjuryType = "spinal"
	InjuryTBI        InjuryType = "tbi"
)

type FaultLevel string

const (
	FaultNone    FaultLevel = "not_at_fault"
	FaultPartial FaultLevel = "partially_at_fault"
	FaultMost    FaultLevel = "mostly_at_fault"
	FaultFull    FaultLevel = "fully_at_fault"
)

type InsuranceContact string

const (
	InsuranceNotContacted  InsuranceContact = "not_contacted"
	InsuranceContacted     InsuranceContact = "contacted"
	InsuranceGaveStatement InsuranceContact = "gave_statement"
)

// QuizAnswers is the immutable snapshot of classification inputs captured by
// the funnel. Fields are closed enums so an unrecognized value fails
// validation instead of silently scoring zero.
type QuizAnswers struct {
	Source            FunnelSource     `json:"source"`
	IncidentType      IncidentType     `json:"incident_type"`
	InjuryType        InjuryType       `json:"injury_type"`
	MonthsSince       int              `json:"months_since_incident"`
	ReceivedTreatment bool             `json:"received_treatment"`
	InTreatment       bool             `json:"in_treatment"`
	HadSurgery        bool             `json:"had_surgery"`
	Hospitalized      bool             `json:"hospitalized"`
	MissedWork        bool             `json:"missed_work"`
	DaysMissed        int              `json:"days_missed"`
	LostWages         int              `json:"lost_wages"` // whole dollars
	Fault             FaultLevel       `json:"fault"`
	Insurance         InsuranceContact `json:"insurance_contact"`
	HasAttorney       bool             `json:"has_attorney"`
}

func (s FunnelSource) Valid() bool {
	return s == SourceFunnelA || s == SourceFunnelB
}

func (t IncidentType) Valid() bool {
	switch t {
	case IncidentCarAccident, IncidentTruckAccident, IncidentMotorcycle,
		IncidentSlipAndFall, IncidentWorkplace, IncidentPedestrian, IncidentOther:
		return true
	}
	return false
}

func (t InjuryType) Valid() bool {
	switch t {
	case InjurySoftTissue, InjuryWhiplash, InjuryBrokenBone, InjuryBackInjury,
		InjuryBurn, InjuryInternal, InjuryAmputation, InjurySpinal, InjuryTBI:
		return true
	}
	return false
}

func (f FaultLevel) Valid() bool {
	switch f {
	case FaultNone, FaultPartial, FaultMost, FaultFull:
		return true
	}
	return false
}

func (i InsuranceContact) Valid() bool {
	switch i {
	case InsuranceNotContacted, InsuranceContacted, InsuranceGaveStatement:
		return true
	}
	return false
}

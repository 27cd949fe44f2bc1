package usecase

import (
	"regexp"
	"strings"

	"github.com/claimconnect/leadcore/internal/entity"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone reduces any formatting to exactly 10 digits. A leading
// country code 1 on an 11-digit number is dropped; anything else is rejected.
func NormalizePhone(phone string) (string, bool) {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if len(cleaned) == 11 && strings.HasPrefix(cleaned, "1") {
		cleaned = cleaned[1:]
	}
	if len(cleaned) != 10 {
		return "", false
	}
	return cleaned, true
}

// NormalizeCode strips formatting from a submitted code. Codes compare as
// strings so leading zeros survive.
func NormalizeCode(code string) (string, bool) {
	cleaned := nonDigits.ReplaceAllString(code, "")
	if len(cleaned) < 4 || len(cleaned) > 6 {
		return "", false
	}
	return cleaned, true
}

func ValidateAnswers(a entity.QuizAnswers) []ValidationError {
	var errors []ValidationError

	if !a.Source.Valid() {
		errors = append(errors, ValidationError{"source", "must be funnel-a or funnel-b"})
	}
	if !a.IncidentType.Valid() {
		errors = append(errors, ValidationError{"incident_type", "is not a known incident type"})
	}
	if !a.InjuryType.Valid() {
		errors = append(errors, ValidationError{"injury_type", "is not a known injury type"})
	}
	if !a.Fault.Valid() {
		errors = append(errors, ValidationError{"fault", "is not a known fault level"})
	}
	if !a.Insurance.Valid() {
		errors = append(errors, ValidationError{"insurance_contact", "is not a known contact status"})
	}
	if a.MonthsSince < 0 {
		errors = append(errors, ValidationError{"months_since_incident", "must not be negative"})
	}
	if a.DaysMissed < 0 {
		errors = append(errors, ValidationError{"days_missed", "must not be negative"})
	}
	if !a.MissedWork && a.DaysMissed > 0 {
		errors = append(errors, ValidationError{"days_missed", "requires missed_work"})
	}

	return errors
}

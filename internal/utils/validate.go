package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	phoneRegex   = regexp.MustCompile(`^\d{10}$`)
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pincodeRegex = regexp.MustCompile(`^\d{5,6}$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// Donor eligibility thresholds.
const (
	MinDonorAge      = 18
	MinVaccineDays   = 14
	MinSubstanceDays = 2
)

// ValidPhone reports whether the value contains exactly 10 digits,
// ignoring separators.
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(nonDigit.ReplaceAllString(phone, ""))
}

// ValidEmail reports whether the value looks like an email address.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidPincode reports whether the value is a 5 or 6 digit pincode.
func ValidPincode(pincode string) bool {
	return pincodeRegex.MatchString(pincode)
}

// AgeFromDOB derives whole years from a YYYY-MM-DD date of birth,
// accounting for whether the birthday has passed this year. Returns 0 for
// an empty or unparseable value.
func AgeFromDOB(dob string) int {
	if dob == "" {
		return 0
	}
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// FutureDate reports whether the YYYY-MM-DD value is today or later.
func FutureDate(date string) bool {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !parsed.Before(today)
}

// DonorEligibility holds the answers a donor gives before their profile
// is accepted.
type DonorEligibility struct {
	Age              int
	Vaccinated       bool
	VaccineDays      int
	SubstanceUse     bool
	SubstanceUseDays int
	GuardianName     string
	GuardianPhone    string
}

// CheckDonorEligibility validates the donor questionnaire against the
// platform's donation thresholds, returning a user-facing message on the
// first failed rule.
func CheckDonorEligibility(e DonorEligibility) error {
	if e.Age <= MinDonorAge {
		return fmt.Errorf("donors must be over %d years old", MinDonorAge)
	}
	if e.Vaccinated && e.VaccineDays < MinVaccineDays {
		return fmt.Errorf("donors must wait at least %d days after vaccination", MinVaccineDays)
	}
	if e.SubstanceUse && e.SubstanceUseDays < MinSubstanceDays {
		return fmt.Errorf("donors must wait at least %d days after alcohol, drug or tobacco use", MinSubstanceDays)
	}
	if strings.TrimSpace(e.GuardianName) == "" {
		return fmt.Errorf("guardian name is required")
	}
	if !ValidPhone(e.GuardianPhone) {
		return fmt.Errorf("guardian phone must be 10 digits")
	}
	return nil
}

package donor

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidInput marks construction-time validation failures: missing or
// non-positive required values, unrecognized gender/unit tags, and
// unparseable or future last-donation dates. Eligibility failures are never
// errors; they surface only through Result.Reasons.
var ErrInvalidInput = errors.New("invalid donor input")

// Evaluator holds one validated, unit-normalized donor record. It is
// immutable after construction and safe for concurrent use.
type Evaluator struct {
	nameOrID   string
	age        int
	gender     Gender
	weightKg   float64
	heightCm   float64
	hemoglobin float64

	daysSinceLastDonation *int

	totalBloodVolumeL float64
	maxDrawVolumeML   int
}

// New validates and normalizes the donor record using the system clock as
// the evaluation date.
func New(in Input) (*Evaluator, error) {
	return NewWithClock(in, SystemClock{})
}

// NewWithClock is New with an explicit clock for deterministic date math.
// All unit conversion (weight to kg, height to cm, date string to calendar
// date) happens here, so Evaluate operates only on normalized data.
func NewWithClock(in Input, clk Clock) (*Evaluator, error) {
	if in.Age < 0 {
		return nil, fmt.Errorf("%w: age must be non-negative", ErrInvalidInput)
	}

	gender, err := parseGender(in.Gender)
	if err != nil {
		return nil, err
	}

	if in.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be a positive number", ErrInvalidInput)
	}
	weightKg, err := weightToKg(in.Weight, in.WeightUnit)
	if err != nil {
		return nil, err
	}

	if in.Height <= 0 {
		return nil, fmt.Errorf("%w: height must be a positive number", ErrInvalidInput)
	}
	heightCm, err := heightToCm(in.Height, in.HeightUnit)
	if err != nil {
		return nil, err
	}

	if in.Hemoglobin <= 0 {
		return nil, fmt.Errorf("%w: hemoglobin must be a positive number", ErrInvalidInput)
	}

	days, err := daysSinceDonation(in, clk)
	if err != nil {
		return nil, err
	}

	tbv := roundTo3(nadlerVolume(heightCm/100, weightKg, gender))

	return &Evaluator{
		nameOrID:              in.DonorNameOrID,
		age:                   in.Age,
		gender:                gender,
		weightKg:              weightKg,
		heightCm:              heightCm,
		hemoglobin:            in.Hemoglobin,
		daysSinceLastDonation: days,
		totalBloodVolumeL:     tbv,
		maxDrawVolumeML:       maxDrawVolumeML(tbv),
	}, nil
}

// Evaluate checks the four eligibility criteria in fixed order. Every
// criterion is checked regardless of earlier failures so the reasons list is
// complete; the donation-interval criterion is skipped entirely when no
// last-donation date was supplied.
func (e *Evaluator) Evaluate() Result {
	reasons := []string{}
	if e.age < MinAgeYears {
		reasons = append(reasons, "Age must be at least 16 years.")
	}
	if e.weightKg < MinWeightKg {
		reasons = append(reasons, "Weight must be at least 50 kg.")
	}
	if e.hemoglobin < MinHemoglobinGdL {
		reasons = append(reasons, "Hemoglobin must be at least 12.5 g/dL.")
	}
	if e.daysSinceLastDonation != nil && *e.daysSinceLastDonation < MinDaysBetweenDonations {
		reasons = append(reasons, "Last donation must be at least 56 days ago.")
	}

	eligible := len(reasons) == 0
	status := StatusIneligible
	if eligible {
		status = StatusEligible
	}

	var days *int
	if e.daysSinceLastDonation != nil {
		v := *e.daysSinceLastDonation
		days = &v
	}

	return Result{
		Eligible:              eligible,
		EligibilityStatus:     status,
		Reasons:               reasons,
		TotalBloodVolumeL:     e.totalBloodVolumeL,
		MaxDrawVolumeML:       e.maxDrawVolumeML,
		DaysSinceLastDonation: days,
		DonorNameOrID:         e.nameOrID,
	}
}

func parseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	default:
		return "", fmt.Errorf("%w: gender must be %q, %q, or %q", ErrInvalidInput, GenderMale, GenderFemale, GenderOther)
	}
}

func weightToKg(weight float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitKg:
		return weight, nil
	case UnitLbs:
		return weight * lbsToKg, nil
	default:
		return 0, fmt.Errorf("%w: weight unit must be %q or %q", ErrInvalidInput, UnitKg, UnitLbs)
	}
}

func heightToCm(height float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitCm:
		return height, nil
	case UnitInches:
		return height * inchToCm, nil
	default:
		return 0, fmt.Errorf("%w: height unit must be %q or %q", ErrInvalidInput, UnitCm, UnitInches)
	}
}

// nadlerVolume estimates total blood volume in liters from height in meters
// and weight in kilograms. GenderOther averages the two coefficient sets.
func nadlerVolume(heightM, weightKg float64, gender Gender) float64 {
	male := 0.3669*math.Pow(heightM, 3) + 0.03219*weightKg + 0.6041
	female := 0.3561*math.Pow(heightM, 3) + 0.03308*weightKg + 0.1833
	switch gender {
	case GenderMale:
		return male
	case GenderFemale:
		return female
	default:
		return (male + female) / 2
	}
}

// maxDrawVolumeML converts the rounded blood volume to the maximum safe draw
// in whole milliliters, rounding half away from zero.
func maxDrawVolumeML(tbvLiters float64) int {
	return int(math.Round(tbvLiters * 1000 * maxDrawFraction))
}

func roundTo3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// daysSinceDonation resolves the optional last-donation date and returns the
// whole-day difference to the clock's current date. A future date is a
// validation error; no date at all yields nil.
func daysSinceDonation(in Input, clk Clock) (*int, error) {
	var donated time.Time
	switch {
	case in.LastDonationDate != nil:
		donated = *in.LastDonationDate
	case strings.TrimSpace(in.LastDonation) != "":
		t, err := time.Parse("2006-01-02", strings.TrimSpace(in.LastDonation))
		if err != nil {
			return nil, fmt.Errorf("%w: last donation date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		donated = t
	default:
		return nil, nil
	}

	today := midnight(clk.Now())
	donated = midnight(donated)
	if donated.After(today) {
		return nil, fmt.Errorf("%w: last donation date cannot be in the future", ErrInvalidInput)
	}

	days := int(today.Sub(donated).Hours() / 24)
	return &days, nil
}

// midnight truncates a timestamp to its calendar date.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

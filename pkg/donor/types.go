// Package donor implements blood donor eligibility screening. A donor record
// is validated and unit-normalized once at construction; evaluation then
// estimates total blood volume with Nadler's formula, derives the maximum
// safe draw volume, and checks the four whole-blood eligibility criteria
// (age, weight, hemoglobin, interval since last donation).
package donor

import "time"

// Gender selects the Nadler coefficient set.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	// GenderOther uses the mean of the male and female estimates.
	GenderOther Gender = "other"
)

// Recognized measurement units. Input matching is case-insensitive.
const (
	UnitKg     = "kg"
	UnitLbs    = "lbs"
	UnitCm     = "cm"
	UnitInches = "inches"
)

// Unit conversion factors.
const (
	lbsToKg  = 0.453592
	inchToCm = 2.54
)

// Screening thresholds for whole-blood donation.
const (
	MinAgeYears             = 16
	MinWeightKg             = 50.0
	MinHemoglobinGdL        = 12.5
	MinDaysBetweenDonations = 56
)

// maxDrawFraction is the share of total blood volume considered safe to
// collect in a single donation.
const maxDrawFraction = 0.10

// Status labels reported in Result.EligibilityStatus.
const (
	StatusEligible   = "✅ Eligible"
	StatusIneligible = "❌ Ineligible"
)

// Input is a single donor record as supplied by a caller. All fields except
// DonorNameOrID and the last-donation fields are required; New rejects
// records with missing or unrecognized values.
type Input struct {
	// DonorNameOrID is an opaque display label passed through to the result.
	DonorNameOrID string `json:"donorNameOrID,omitempty" yaml:"name,omitempty"`

	Age        int     `json:"age" yaml:"age"`
	Gender     string  `json:"gender" yaml:"gender"`
	Weight     float64 `json:"weight" yaml:"weight"`
	WeightUnit string  `json:"weightUnit" yaml:"weightUnit"`
	Height     float64 `json:"height" yaml:"height"`
	HeightUnit string  `json:"heightUnit" yaml:"heightUnit"`

	// Hemoglobin is the measured level in g/dL.
	Hemoglobin float64 `json:"hemoglobin" yaml:"hemoglobin"`

	// LastDonation is an optional ISO 8601 (YYYY-MM-DD) date string.
	LastDonation string `json:"lastDonation,omitempty" yaml:"lastDonation,omitempty"`

	// LastDonationDate is an optional already-parsed donation date. When both
	// it and LastDonation are set, LastDonationDate wins.
	LastDonationDate *time.Time `json:"-" yaml:"-"`
}

// Result is the outcome of one eligibility evaluation.
type Result struct {
	Eligible          bool     `json:"eligible" yaml:"eligible"`
	EligibilityStatus string   `json:"eligibility_status" yaml:"eligibility_status"`
	Reasons           []string `json:"reasons" yaml:"reasons"`
	TotalBloodVolumeL float64  `json:"total_blood_volume_l" yaml:"total_blood_volume_l"`
	MaxDrawVolumeML   int      `json:"max_draw_volume_ml" yaml:"max_draw_volume_ml"`

	// DaysSinceLastDonation is set only when the input carried a
	// last-donation date.
	DaysSinceLastDonation *int   `json:"days_since_last_donation,omitempty" yaml:"days_since_last_donation,omitempty"`
	DonorNameOrID         string `json:"donor_name_or_id,omitempty" yaml:"donor_name_or_id,omitempty"`
}

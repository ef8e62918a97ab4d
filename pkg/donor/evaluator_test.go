package donor

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

// fixedClock pins the evaluation date so day arithmetic is deterministic.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var evalDate = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func testClock() Clock { return fixedClock{t: evalDate} }

// validInput mirrors the canonical record used across the suite:
// last donation 60 days before the fixed evaluation date.
func validInput() Input {
	return Input{
		DonorNameOrID: "donor1",
		Age:           30,
		Gender:        "Male",
		Weight:        70,
		WeightUnit:    "kg",
		Height:        175,
		HeightUnit:    "cm",
		Hemoglobin:    14.0,
		LastDonation:  "2026-01-14",
	}
}

func mustNew(t *testing.T, in Input) *Evaluator {
	t.Helper()
	e, err := NewWithClock(in, testClock())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

func TestNewNormalizesInput(t *testing.T) {
	e := mustNew(t, validInput())

	if e.age != 30 {
		t.Errorf("expected age 30, got %d", e.age)
	}
	if e.gender != GenderMale {
		t.Errorf("expected gender %q, got %q", GenderMale, e.gender)
	}
	if math.Abs(e.weightKg-70) > 1e-9 {
		t.Errorf("expected weightKg 70, got %v", e.weightKg)
	}
	if math.Abs(e.heightCm-175) > 1e-9 {
		t.Errorf("expected heightCm 175, got %v", e.heightCm)
	}
	if e.daysSinceLastDonation == nil || *e.daysSinceLastDonation != 60 {
		t.Errorf("expected 60 days since last donation, got %v", e.daysSinceLastDonation)
	}
	if e.nameOrID != "donor1" {
		t.Errorf("expected name donor1, got %q", e.nameOrID)
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"negative age", func(in *Input) { in.Age = -1 }},
		{"missing gender", func(in *Input) { in.Gender = "" }},
		{"unknown gender", func(in *Input) { in.Gender = "InvalidGender" }},
		{"missing weight", func(in *Input) { in.Weight = 0 }},
		{"negative weight", func(in *Input) { in.Weight = -10 }},
		{"unknown weight unit", func(in *Input) { in.WeightUnit = "stone" }},
		{"missing height", func(in *Input) { in.Height = 0 }},
		{"unknown height unit", func(in *Input) { in.HeightUnit = "feet" }},
		{"missing hemoglobin", func(in *Input) { in.Hemoglobin = 0 }},
		{"negative hemoglobin", func(in *Input) { in.Hemoglobin = -12.5 }},
		{"unparseable date", func(in *Input) { in.LastDonation = "invalid-date" }},
		{"future date", func(in *Input) { in.LastDonation = "2026-03-16" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := NewWithClock(in, testClock())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestGenderAndUnitsCaseInsensitive(t *testing.T) {
	in := validInput()
	in.Gender = "  FEMALE "
	in.WeightUnit = "KG"
	in.HeightUnit = "Cm"
	e := mustNew(t, in)
	if e.gender != GenderFemale {
		t.Errorf("expected gender %q, got %q", GenderFemale, e.gender)
	}

	in.Gender = "OTHER"
	in.WeightUnit = "Lbs"
	in.HeightUnit = "INCHES"
	e = mustNew(t, in)
	if e.gender != GenderOther {
		t.Errorf("expected gender %q, got %q", GenderOther, e.gender)
	}
}

func TestWeightConversionLbs(t *testing.T) {
	in := validInput()
	in.Weight = 110
	in.WeightUnit = "lbs"
	e := mustNew(t, in)
	if math.Abs(e.weightKg-49.89512) > 1e-9 {
		t.Errorf("expected 49.89512 kg, got %v", e.weightKg)
	}

	// Round trip: the converted value must match a direct kg input.
	direct := validInput()
	direct.Weight = 49.89512
	d := mustNew(t, direct)
	if math.Abs(e.weightKg-d.weightKg) > 1e-9 {
		t.Errorf("lbs conversion %v does not match direct kg input %v", e.weightKg, d.weightKg)
	}
	if e.totalBloodVolumeL != d.totalBloodVolumeL {
		t.Errorf("blood volume differs: %v vs %v", e.totalBloodVolumeL, d.totalBloodVolumeL)
	}
}

func TestHeightConversionInches(t *testing.T) {
	in := validInput()
	in.Height = 70
	in.HeightUnit = "inches"
	e := mustNew(t, in)
	if math.Abs(e.heightCm-177.8) > 1e-9 {
		t.Errorf("expected 177.8 cm, got %v", e.heightCm)
	}
}

func TestBloodVolume(t *testing.T) {
	tests := []struct {
		gender  string
		height  float64
		weight  float64
		wantTBV float64
		wantML  int
	}{
		// 0.3669*1.75^3 + 0.03219*70 + 0.6041 = 4.8238 -> 4.824
		{"male", 175, 70, 4.824, 482},
		// 0.3561*1.65^3 + 0.03308*65 + 0.1833 = 3.9331 -> 3.933
		{"female", 165, 65, 3.933, 393},
		// mean of the male (4.8238) and female (4.4074) estimates
		{"other", 175, 70, 4.616, 462},
	}

	for _, tt := range tests {
		t.Run(tt.gender, func(t *testing.T) {
			in := validInput()
			in.Gender = tt.gender
			in.Height = tt.height
			in.Weight = tt.weight
			e := mustNew(t, in)
			if math.Abs(e.totalBloodVolumeL-tt.wantTBV) > 1e-9 {
				t.Errorf("expected TBV %v L, got %v", tt.wantTBV, e.totalBloodVolumeL)
			}
			if e.maxDrawVolumeML != tt.wantML {
				t.Errorf("expected max draw %d mL, got %d", tt.wantML, e.maxDrawVolumeML)
			}
		})
	}
}

func TestMaxDrawRoundsHalfAwayFromZero(t *testing.T) {
	// 3.125 L -> exactly 312.5 mL, which rounds up.
	if got := maxDrawVolumeML(3.125); got != 313 {
		t.Errorf("expected 313 mL for 3.125 L, got %d", got)
	}
	if got := maxDrawVolumeML(3.0); got != 300 {
		t.Errorf("expected 300 mL for 3.0 L, got %d", got)
	}
}

// The max draw volume is always the rounded blood volume times 100.
func TestMaxDrawMatchesRoundedVolume(t *testing.T) {
	weights := []float64{50, 58.5, 65, 72.25, 90, 110}
	for _, w := range weights {
		in := validInput()
		in.Weight = w
		e := mustNew(t, in)
		want := int(math.Round(e.totalBloodVolumeL * 100))
		if e.maxDrawVolumeML != want {
			t.Errorf("weight %v: max draw %d != round(TBV*100) = %d", w, e.maxDrawVolumeML, want)
		}
	}
}

func TestEvaluateEligible(t *testing.T) {
	res := mustNew(t, validInput()).Evaluate()

	if !res.Eligible {
		t.Fatalf("expected eligible, got reasons %v", res.Reasons)
	}
	if res.EligibilityStatus != StatusEligible {
		t.Errorf("expected status %q, got %q", StatusEligible, res.EligibilityStatus)
	}
	if res.Reasons == nil || len(res.Reasons) != 0 {
		t.Errorf("expected empty non-nil reasons, got %#v", res.Reasons)
	}
	if res.DaysSinceLastDonation == nil || *res.DaysSinceLastDonation != 60 {
		t.Errorf("expected 60 days since donation, got %v", res.DaysSinceLastDonation)
	}
	if res.DonorNameOrID != "donor1" {
		t.Errorf("expected donor1 passthrough, got %q", res.DonorNameOrID)
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Input)
		wantOK     bool
		wantReason string
	}{
		{"age 16 eligible", func(in *Input) { in.Age = 16 }, true, ""},
		{"age 15 rejected", func(in *Input) { in.Age = 15 }, false, "Age must be at least 16 years."},
		{"weight 50 eligible", func(in *Input) { in.Weight = 50 }, true, ""},
		{"weight 49 rejected", func(in *Input) { in.Weight = 49 }, false, "Weight must be at least 50 kg."},
		{"hemoglobin 12.5 eligible", func(in *Input) { in.Hemoglobin = 12.5 }, true, ""},
		{"hemoglobin 12.4 rejected", func(in *Input) { in.Hemoglobin = 12.4 }, false, "Hemoglobin must be at least 12.5 g/dL."},
		// 2026-01-18 is exactly 56 days before the fixed evaluation date.
		{"56 days eligible", func(in *Input) { in.LastDonation = "2026-01-18" }, true, ""},
		{"55 days rejected", func(in *Input) { in.LastDonation = "2026-01-19" }, false, "Last donation must be at least 56 days ago."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			res := mustNew(t, in).Evaluate()
			if res.Eligible != tt.wantOK {
				t.Fatalf("expected eligible=%v, got %v (reasons %v)", tt.wantOK, res.Eligible, res.Reasons)
			}
			if (len(res.Reasons) == 0) != res.Eligible {
				t.Errorf("reasons must be empty iff eligible: eligible=%v reasons=%v", res.Eligible, res.Reasons)
			}
			if !tt.wantOK {
				if len(res.Reasons) != 1 || res.Reasons[0] != tt.wantReason {
					t.Errorf("expected single reason %q, got %v", tt.wantReason, res.Reasons)
				}
				if res.EligibilityStatus != StatusIneligible {
					t.Errorf("expected status %q, got %q", StatusIneligible, res.EligibilityStatus)
				}
			}
		})
	}
}

// Every failing criterion contributes a reason; there is no short-circuit.
func TestEvaluateCollectsAllReasons(t *testing.T) {
	in := validInput()
	in.Age = 15
	in.Weight = 40
	in.Hemoglobin = 10
	in.LastDonation = "2026-03-05" // 10 days before evaluation

	res := mustNew(t, in).Evaluate()
	if res.Eligible {
		t.Fatal("expected ineligible")
	}
	want := []string{
		"Age must be at least 16 years.",
		"Weight must be at least 50 kg.",
		"Hemoglobin must be at least 12.5 g/dL.",
		"Last donation must be at least 56 days ago.",
	}
	if len(res.Reasons) != len(want) {
		t.Fatalf("expected %d reasons, got %d: %v", len(want), len(res.Reasons), res.Reasons)
	}
	for i := range want {
		if res.Reasons[i] != want[i] {
			t.Errorf("reason %d: expected %q, got %q", i, want[i], res.Reasons[i])
		}
	}
}

func TestEvaluateSkipsDonationCheckWithoutDate(t *testing.T) {
	in := validInput()
	in.LastDonation = ""
	res := mustNew(t, in).Evaluate()

	if !res.Eligible {
		t.Errorf("expected eligible without donation date, got reasons %v", res.Reasons)
	}
	if res.DaysSinceLastDonation != nil {
		t.Errorf("expected no days-since value, got %d", *res.DaysSinceLastDonation)
	}
}

func TestLastDonationDatePrecedence(t *testing.T) {
	donated := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	in := validInput()
	in.LastDonation = "not-a-date" // ignored when the parsed date is set
	in.LastDonationDate = &donated
	e := mustNew(t, in)
	if e.daysSinceLastDonation == nil || *e.daysSinceLastDonation != 60 {
		t.Errorf("expected 60 days from parsed date, got %v", e.daysSinceLastDonation)
	}

	in = validInput()
	in.LastDonation = ""
	in.LastDonationDate = &donated
	e = mustNew(t, in)
	if e.daysSinceLastDonation == nil || *e.daysSinceLastDonation != 60 {
		t.Errorf("expected 60 days from parsed date alone, got %v", e.daysSinceLastDonation)
	}

	future := evalDate.AddDate(0, 0, 1)
	in.LastDonationDate = &future
	if _, err := NewWithClock(in, testClock()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for future parsed date, got %v", err)
	}
}

func TestResultJSONFieldNames(t *testing.T) {
	res := mustNew(t, validInput()).Evaluate()
	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{
		`"eligible"`,
		`"eligibility_status"`,
		`"reasons"`,
		`"total_blood_volume_l"`,
		`"max_draw_volume_ml"`,
		`"days_since_last_donation"`,
		`"donor_name_or_id"`,
	} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("expected JSON key %s in %s", key, raw)
		}
	}
}

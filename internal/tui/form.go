// Package tui provides an interactive terminal form for donor eligibility
// screening.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/dhaller/donorscreen/pkg/donor"
)

// Form field indexes, in the order the fields are added below.
const (
	fieldName = iota
	fieldAge
	fieldGender
	fieldWeight
	fieldWeightUnit
	fieldHeight
	fieldHeightUnit
	fieldHemoglobin
	fieldLastDonation
)

// Form is the interactive screening UI: a donor-details form on the left and
// a result pane on the right.
type Form struct {
	app    *tview.Application
	form   *tview.Form
	result *tview.TextView
}

// NewForm creates the screening form with sensible starting values.
func NewForm() *Form {
	f := &Form{app: tview.NewApplication()}

	f.form = tview.NewForm().
		AddInputField("Donor name or ID", "", 30, nil, nil).
		AddInputField("Age", "18", 10, tview.InputFieldInteger, nil).
		AddDropDown("Gender", []string{"Male", "Female", "Other"}, 0, nil).
		AddInputField("Weight", "70", 10, tview.InputFieldFloat, nil).
		AddDropDown("Weight unit", []string{donor.UnitKg, donor.UnitLbs}, 0, nil).
		AddInputField("Height", "170", 10, tview.InputFieldFloat, nil).
		AddDropDown("Height unit", []string{donor.UnitCm, donor.UnitInches}, 0, nil).
		AddInputField("Hemoglobin (g/dL)", "13.5", 10, tview.InputFieldFloat, nil).
		AddInputField("Last donation (YYYY-MM-DD)", "", 14, nil, nil).
		AddButton("Evaluate", f.evaluate).
		AddButton("Quit", func() { f.app.Stop() })
	f.form.SetBorder(true).SetTitle(" Donor Details ")

	f.result = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	f.result.SetBorder(true).
		SetTitle(" Result ").
		SetBorderColor(tcell.ColorDodgerBlue)
	f.result.SetText("Fill in the donor details and press Evaluate.")

	header := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[::b]Blood Donor Eligibility Screening")
	header.SetBackgroundColor(tcell.ColorDarkBlue)

	footer := tview.NewTextView().
		SetTextAlign(tview.AlignLeft).
		SetText(" Tab: next field   Enter: select   Ctrl+C: quit")
	footer.SetBackgroundColor(tcell.ColorDarkBlue)

	content := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(f.form, 0, 1, true).
		AddItem(f.result, 0, 1, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(content, 0, 1, true).
		AddItem(footer, 1, 0, false)

	f.app.SetRoot(layout, true).SetFocus(f.form)

	return f
}

// Run starts the TUI event loop and blocks until the user quits.
func (f *Form) Run() error {
	return f.app.Run()
}

// evaluate reads the form, runs the calculator, and renders the verdict in
// the result pane. Input errors are shown in the pane rather than aborting.
func (f *Form) evaluate() {
	in, err := f.readInput()
	if err == nil {
		var ev *donor.Evaluator
		ev, err = donor.New(in)
		if err == nil {
			f.renderResult(ev.Evaluate())
			return
		}
	}
	f.result.SetText(fmt.Sprintf("[red::b]Input error[-::-]\n\n%v", err))
}

func (f *Form) readInput() (donor.Input, error) {
	var in donor.Input
	in.DonorNameOrID = strings.TrimSpace(f.fieldText(fieldName))

	age, err := strconv.Atoi(strings.TrimSpace(f.fieldText(fieldAge)))
	if err != nil {
		return in, fmt.Errorf("age must be a whole number")
	}
	in.Age = age

	in.Gender = f.dropdownValue(fieldGender)

	in.Weight, err = parseFloatField(f.fieldText(fieldWeight), "weight")
	if err != nil {
		return in, err
	}
	in.WeightUnit = f.dropdownValue(fieldWeightUnit)

	in.Height, err = parseFloatField(f.fieldText(fieldHeight), "height")
	if err != nil {
		return in, err
	}
	in.HeightUnit = f.dropdownValue(fieldHeightUnit)

	in.Hemoglobin, err = parseFloatField(f.fieldText(fieldHemoglobin), "hemoglobin")
	if err != nil {
		return in, err
	}

	in.LastDonation = strings.TrimSpace(f.fieldText(fieldLastDonation))
	return in, nil
}

func (f *Form) renderResult(res donor.Result) {
	var b strings.Builder

	if res.Eligible {
		b.WriteString("[green::b]" + res.EligibilityStatus + "[-::-]\n\n")
	} else {
		b.WriteString("[red::b]" + res.EligibilityStatus + "[-::-]\n\n")
	}

	if res.DonorNameOrID != "" {
		fmt.Fprintf(&b, "Donor:                    %s\n", res.DonorNameOrID)
	}
	fmt.Fprintf(&b, "Est. total blood volume:  %.3f L\n", res.TotalBloodVolumeL)
	fmt.Fprintf(&b, "Max draw volume:          %d mL\n", res.MaxDrawVolumeML)
	if res.DaysSinceLastDonation != nil {
		fmt.Fprintf(&b, "Days since last donation: %d\n", *res.DaysSinceLastDonation)
	}

	if len(res.Reasons) > 0 {
		b.WriteString("\n[yellow]Reasons:[-]\n")
		for _, r := range res.Reasons {
			fmt.Fprintf(&b, "  - %s\n", r)
		}
	}

	f.result.SetText(b.String())
}

func (f *Form) fieldText(index int) string {
	return f.form.GetFormItem(index).(*tview.InputField).GetText()
}

func (f *Form) dropdownValue(index int) string {
	_, value := f.form.GetFormItem(index).(*tview.DropDown).GetCurrentOption()
	return value
}

func parseFloatField(text, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

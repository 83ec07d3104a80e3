// Package wizard is the profile form's state machine, independent of any UI.
package wizard

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/dhabedank/fitplan/internal/core"
)

// Step identifies one page of the form.
type Step int

const (
	StepFitnessLevel Step = iota
	StepGoal
	StepEquipment
	StepDiet
	StepDuration
)

// TotalSteps is the number of pages in the form.
const TotalSteps = 5

// Title returns the question shown for the step.
func (s Step) Title() string {
	switch s {
	case StepFitnessLevel:
		return "What's your fitness level?"
	case StepGoal:
		return "What's your primary goal?"
	case StepEquipment:
		return "What equipment do you have?"
	case StepDiet:
		return "What's your diet preference?"
	case StepDuration:
		return "How long do you want to work out?"
	}
	return ""
}

// Name is a short label for progress lines.
func (s Step) Name() string {
	switch s {
	case StepFitnessLevel:
		return "Level"
	case StepGoal:
		return "Goal"
	case StepEquipment:
		return "Equipment"
	case StepDiet:
		return "Diet"
	case StepDuration:
		return "Duration"
	}
	return ""
}

// MultiSelect reports whether the step toggles several values.
func (s Step) MultiSelect() bool {
	return s == StepEquipment
}

// Option is one selectable choice.
type Option struct {
	Value       string
	Label       string
	Description string
	Selected    bool
}

var levelOptions = []Option{
	{Value: string(core.LevelBeginner), Label: "Beginner", Description: "New to fitness or returning after a long break"},
	{Value: string(core.LevelIntermediate), Label: "Intermediate", Description: "Regular exercise routine for 6+ months"},
	{Value: string(core.LevelAdvanced), Label: "Advanced", Description: "Consistent training for 2+ years"},
}

var goalOptions = []Option{
	{Value: string(core.GoalWeightLoss), Label: "Weight Loss", Description: "Burn fat and lose weight"},
	{Value: string(core.GoalMuscleGain), Label: "Muscle Gain", Description: "Build muscle mass and strength"},
	{Value: string(core.GoalEndurance), Label: "Endurance", Description: "Improve cardiovascular fitness"},
	{Value: string(core.GoalStrength), Label: "Strength", Description: "Increase overall strength and power"},
}

// EquipmentOptions are the equipment choices offered by the form.
var EquipmentOptions = []string{
	"Bodyweight", "Dumbbells", "Resistance Bands", "Kettlebells",
	"Barbell", "Pull-up Bar", "Yoga Mat", "Treadmill",
}

var dietOptions = []Option{
	{Value: string(core.DietNonVegetarian), Label: "Non-Vegetarian", Description: "Includes meat, fish, and poultry"},
	{Value: string(core.DietVegetarian), Label: "Vegetarian", Description: "No meat, but includes dairy and eggs"},
	{Value: string(core.DietVegan), Label: "Vegan", Description: "Plant-based diet only"},
	{Value: string(core.DietKeto), Label: "Keto", Description: "Low-carb, high-fat diet"},
	{Value: string(core.DietPaleo), Label: "Paleo", Description: "Whole foods, no grains or dairy"},
	{Value: string(core.DietMediterranean), Label: "Mediterranean", Description: "Vegetables, olive oil, fish and legumes"},
}

var durationOptions = []Option{
	{Value: "30", Label: "30 minutes", Description: "Quick and efficient workouts"},
	{Value: "45", Label: "45 minutes", Description: "Balanced workout duration"},
	{Value: "60", Label: "1 hour", Description: "Comprehensive training sessions"},
}

// Transition is the outcome of Next or Previous.
type Transition int

const (
	// None means nothing happened (Next after submission).
	None Transition = iota
	// Advance moved to the next step.
	Advance
	// Back moved to the previous step.
	Back
	// Submit means the form is complete; it is returned exactly once.
	Submit
	// Exit means Previous was pressed on the first step.
	Exit
)

func (t Transition) String() string {
	switch t {
	case Advance:
		return "advance"
	case Back:
		return "back"
	case Submit:
		return "submit"
	case Exit:
		return "exit"
	}
	return "none"
}

// Wizard holds the current step and the profile being built.
type Wizard struct {
	step      Step
	profile   core.UserProfile
	submitted bool
}

// New starts a wizard at the first step with the default selections.
func New() *Wizard {
	return NewWithProfile(core.DefaultProfile())
}

// NewWithProfile starts a wizard pre-filled from a saved profile.
func NewWithProfile(p core.UserProfile) *Wizard {
	p.Normalize()
	p.Equipment = slices.Clone(p.Equipment)
	if p.Equipment == nil {
		p.Equipment = []string{}
	}
	return &Wizard{profile: p}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Submitted reports whether the form has been submitted.
func (w *Wizard) Submitted() bool {
	return w.submitted
}

// Profile returns a copy of the profile as currently selected.
func (w *Wizard) Profile() core.UserProfile {
	p := w.profile
	p.Equipment = slices.Clone(w.profile.Equipment)
	return p
}

// Options lists the choices for the current step with their selection state.
func (w *Wizard) Options() []Option {
	var src []Option
	var current string

	switch w.step {
	case StepFitnessLevel:
		src, current = levelOptions, string(w.profile.FitnessLevel)
	case StepGoal:
		src, current = goalOptions, string(w.profile.FitnessGoal)
	case StepDiet:
		src, current = dietOptions, string(w.profile.DietPreference)
	case StepDuration:
		src, current = durationOptions, strconv.Itoa(int(w.profile.WorkoutDuration))
	case StepEquipment:
		out := make([]Option, len(EquipmentOptions))
		for i, e := range EquipmentOptions {
			out[i] = Option{Value: e, Label: e, Selected: slices.Contains(w.profile.Equipment, e)}
		}
		return out
	}

	out := make([]Option, len(src))
	for i, o := range src {
		o.Selected = o.Value == current
		out[i] = o
	}
	return out
}

// Select sets the current step's field. On the equipment step it toggles
// the value in or out of the list.
func (w *Wizard) Select(value string) error {
	if w.submitted {
		return fmt.Errorf("form already submitted")
	}
	if !w.valid(value) {
		return fmt.Errorf("invalid option %q for %s", value, w.step.Name())
	}

	switch w.step {
	case StepFitnessLevel:
		w.profile.FitnessLevel = core.FitnessLevel(value)
	case StepGoal:
		w.profile.FitnessGoal = core.FitnessGoal(value)
	case StepEquipment:
		if i := slices.Index(w.profile.Equipment, value); i >= 0 {
			w.profile.Equipment = slices.Delete(w.profile.Equipment, i, i+1)
		} else {
			w.profile.Equipment = append(w.profile.Equipment, value)
		}
	case StepDiet:
		w.profile.DietPreference = core.DietPreference(value)
	case StepDuration:
		n, _ := strconv.Atoi(value)
		w.profile.WorkoutDuration = core.Minutes(n)
	}
	return nil
}

func (w *Wizard) valid(value string) bool {
	for _, o := range w.Options() {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Next advances, or submits on the last step. Submit is returned once;
// later calls return None.
func (w *Wizard) Next() Transition {
	if w.submitted {
		return None
	}
	if int(w.step) < TotalSteps-1 {
		w.step++
		return Advance
	}
	w.submitted = true
	return Submit
}

// Previous moves back one step, or returns Exit from the first step.
func (w *Wizard) Previous() Transition {
	if w.submitted {
		return None
	}
	if w.step == StepFitnessLevel {
		return Exit
	}
	w.step--
	return Back
}

// Progress is the position within the form.
type Progress struct {
	Current int // 1-based
	Total   int
	Percent int
}

func (p Progress) String() string {
	return fmt.Sprintf("Step %d of %d · %d%% Complete", p.Current, p.Total, p.Percent)
}

// Progress returns the current position.
func (w *Wizard) Progress() Progress {
	current := int(w.step) + 1
	return Progress{
		Current: current,
		Total:   TotalSteps,
		Percent: int(math.Round(float64(current) / TotalSteps * 100)),
	}
}

// Reset returns to the first step with the default selections.
func (w *Wizard) Reset() {
	*w = *New()
}

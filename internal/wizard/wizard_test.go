package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/fitplan/internal/core"
)

func TestDefaults(t *testing.T) {
	w := New()

	want := core.UserProfile{
		FitnessLevel:    core.LevelBeginner,
		FitnessGoal:     core.GoalWeightLoss,
		Equipment:       []string{},
		DietPreference:  core.DietNonVegetarian,
		WorkoutDuration: 45,
	}
	if diff := cmp.Diff(want, w.Profile()); diff != "" {
		t.Errorf("default profile mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StepFitnessLevel, w.Step())
}

func TestPreviousOnFirstStepExits(t *testing.T) {
	w := New()

	assert.Equal(t, Exit, w.Previous())
	assert.Equal(t, StepFitnessLevel, w.Step())
}

func TestNextSubmitsExactlyOnce(t *testing.T) {
	w := New()

	for i := 0; i < TotalSteps-1; i++ {
		require.Equal(t, Advance, w.Next(), "step %d", i)
	}
	assert.Equal(t, StepDuration, w.Step())

	assert.Equal(t, Submit, w.Next())
	assert.True(t, w.Submitted())
	assert.Equal(t, None, w.Next())
	assert.Equal(t, None, w.Next())
	assert.Equal(t, None, w.Previous())
}

func TestBackAndForth(t *testing.T) {
	w := New()
	w.Next()
	w.Next()

	assert.Equal(t, Back, w.Previous())
	assert.Equal(t, StepGoal, w.Step())
	assert.Equal(t, Advance, w.Next())
	assert.Equal(t, StepEquipment, w.Step())
}

func TestSelectPerStep(t *testing.T) {
	w := New()

	require.NoError(t, w.Select("advanced"))
	w.Next()
	require.NoError(t, w.Select("strength"))
	w.Next()
	require.NoError(t, w.Select("Dumbbells"))
	require.NoError(t, w.Select("Barbell"))
	require.NoError(t, w.Select("Dumbbells"))
	w.Next()
	require.NoError(t, w.Select("keto"))
	w.Next()
	require.NoError(t, w.Select("60"))

	p := w.Profile()
	assert.Equal(t, core.LevelAdvanced, p.FitnessLevel)
	assert.Equal(t, core.GoalStrength, p.FitnessGoal)
	assert.Equal(t, []string{"Barbell"}, p.Equipment)
	assert.Equal(t, core.DietKeto, p.DietPreference)
	assert.Equal(t, core.Minutes(60), p.WorkoutDuration)
}

func TestSelectRejectsUnknown(t *testing.T) {
	w := New()
	assert.Error(t, w.Select("olympian"))
	assert.Equal(t, core.LevelBeginner, w.Profile().FitnessLevel)
}

func TestSelectAfterSubmit(t *testing.T) {
	w := New()
	for w.Next() != Submit {
	}
	assert.Error(t, w.Select("30"))
}

func TestOptionsMarkSelection(t *testing.T) {
	w := New()
	w.Next()

	var selected []string
	for _, o := range w.Options() {
		if o.Selected {
			selected = append(selected, o.Value)
		}
	}
	assert.Equal(t, []string{"weight-loss"}, selected)

	w.Next()
	opts := w.Options()
	assert.Len(t, opts, len(EquipmentOptions))
	for _, o := range opts {
		assert.False(t, o.Selected)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		advances int
		current  int
		percent  int
	}{
		{0, 1, 20},
		{1, 2, 40},
		{2, 3, 60},
		{4, 5, 100},
	}

	for _, tt := range tests {
		w := New()
		for i := 0; i < tt.advances; i++ {
			w.Next()
		}
		p := w.Progress()
		assert.Equal(t, tt.current, p.Current)
		assert.Equal(t, TotalSteps, p.Total)
		assert.Equal(t, tt.percent, p.Percent)
	}
	assert.Equal(t, "Step 1 of 5 · 20% Complete", New().Progress().String())
}

func TestProfileIsACopy(t *testing.T) {
	w := New()
	w.Next()
	w.Next()
	require.NoError(t, w.Select("Yoga Mat"))

	p := w.Profile()
	p.Equipment[0] = "mutated"
	assert.Equal(t, []string{"Yoga Mat"}, w.Profile().Equipment)
}

func TestNewWithProfileNormalizes(t *testing.T) {
	w := NewWithProfile(core.UserProfile{
		FitnessLevel:    "intermediate",
		FitnessGoal:     "muscle_gain",
		DietPreference:  "non_vegetarian",
		WorkoutDuration: 30,
	})

	p := w.Profile()
	assert.Equal(t, core.GoalMuscleGain, p.FitnessGoal)
	assert.Equal(t, core.DietNonVegetarian, p.DietPreference)
	assert.NotNil(t, p.Equipment)
}

func TestReset(t *testing.T) {
	w := New()
	require.NoError(t, w.Select("advanced"))
	for w.Next() != Submit {
	}

	w.Reset()

	assert.False(t, w.Submitted())
	assert.Equal(t, StepFitnessLevel, w.Step())
	assert.Equal(t, core.LevelBeginner, w.Profile().FitnessLevel)
}

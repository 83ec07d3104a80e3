package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/fitplan/internal/core"
)

func sampleWorkout(t *testing.T) *core.WorkoutPlan {
	t.Helper()
	raw := `{"id":"w1","name":"Full  Body Blast","description":"Three-day split","duration":"45 minutes","difficulty":"beginner",
	"days":[
		{"day":"Monday","focus":"Upper","totalDuration":45,"warmup":["Arm circles"],"cooldown":["Chest stretch"],
		 "exercises":[
			{"name":"Push-up","sets":3,"reps":"10","restTime":"60s","description":"Keep a straight line","targetMuscles":["chest","triceps"],
			 "modifications":{"easier":"Knee push-up","harder":"Decline push-up"}},
			{"name":"Row","sets":3,"reps":"12","restTime":"60s","description":"Squeeze","modifications":"Use a band"}
		 ]},
		{"day":"Wednesday","focus":"Lower","exercises":[{"name":"Squat","sets":4,"reps":"8","restTime":"90s","description":"Depth"}]}
	],
	"tips":["Hydrate"]}`
	var p core.WorkoutPlan
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func sampleMeal(t *testing.T) *core.MealPlan {
	t.Helper()
	raw := `{"id":"m1","name":"Lean Week","description":"High protein",
	"days":[
		{"day":"Day 1",
		 "breakfast":{"name":"Oats","ingredients":["oats","milk"],"instructions":["Boil","Stir"],"nutrition":{"calories":400,"protein":20,"carbs":60,"fat":8},"prepTime":5,"cookTime":10,"servings":1},
		 "lunch":{"name":"Chicken Salad","ingredients":["chicken","greens"],"instructions":["Grill","Toss"],"nutrition":{"calories":550,"protein":45,"carbs":20,"fat":25}},
		 "dinner":{"name":"Salmon","ingredients":["salmon"],"instructions":["Bake"],"nutrition":{"calories":600,"protein":40,"carbs":30,"fat":30}},
		 "snacks":[{"name":"Yogurt","nutrition":{"calories":150}},{"name":"Almonds","nutrition":{"calories":170}}],
		 "totalNutrition":{"calories":1870,"protein":120,"carbs":150,"fat":70}},
		{"day":"Day 2","breakfast":{"name":"Eggs","calories":300,"protein":20,"carbs":2,"fat":20,"recipe":"Scramble"},
		 "snack1":{"name":"Apple","calories":95},"totalCalories":395}
	],
	"shoppingList":["oats","salmon"],"tips":["Prep on Sunday"]}`
	var p core.MealPlan
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestFileName(t *testing.T) {
	tests := []struct {
		kind     core.PlanKind
		name     string
		expected string
	}{
		{core.KindWorkout, "Full  Body Blast", "Full_Body_Blast_workout_plan.txt"},
		{core.KindMeal, "Lean Week", "Lean_Week_meal_plan.txt"},
		{core.KindMeal, "Tab\tand\nnewline", "Tab_and_newline_meal_plan.txt"},
	}

	for _, tt := range tests {
		if got := FileName(tt.kind, tt.name, ".txt"); got != tt.expected {
			t.Errorf("FileName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestWorkoutText(t *testing.T) {
	text := WorkoutText(sampleWorkout(t))

	for _, want := range []string{
		"WORKOUT PLAN: Full  Body Blast\n",
		"Duration: 45 minutes\nDifficulty: beginner\n",
		"DAY: Monday - Upper\nDuration: 45 minutes\n",
		"WARM-UP:\n• Arm circles\n",
		"Push-up\n• Sets: 3 | Reps: 10 | Rest: 60s\n• Target: chest, triceps\n• Keep a straight line\n• Easier: Knee push-up\n• Harder: Decline push-up\n",
		"• Modifications: Use a band\n",
		"COOL-DOWN:\n• Chest stretch\n",
		"TIPS:\n• Hydrate\n",
	} {
		assert.Contains(t, text, want)
	}

	// Days and exercises keep their order.
	order := []string{"DAY: Monday", "Push-up", "Row", "DAY: Wednesday", "Squat"}
	last := -1
	for _, s := range order {
		idx := strings.Index(text, s)
		require.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
}

func TestMealText(t *testing.T) {
	text := MealText(sampleMeal(t))

	for _, want := range []string{
		"MEAL PLAN: Lean Week\n",
		"DAY: Day 1\nTotal Calories: 1870\nProtein: 120g | Carbs: 150g | Fat: 70g\n",
		"BREAKFAST: Oats\nPrep: 5min | Cook: 10min | Serves: 1\nCalories: 400 | P: 20g | C: 60g | F: 8g\n",
		"Ingredients:\n• oats\n• milk\n",
		"Instructions:\n1. Boil\n2. Stir\n",
		"LUNCH: Chicken Salad\n",
		"Instructions:\n1. Grill\n2. Toss\n",
		"DINNER: Salmon\n",
		"SNACKS:\n• Yogurt (150 cal)\n• Almonds (170 cal)\n",
		"DAY: Day 2\nTotal Calories: 395\n",
		"BREAKFAST: Eggs\nCalories: 300 | P: 20g | C: 2g | F: 20g\n",
		"Recipe: Scramble\n",
		"• Apple (95 cal)\n",
		"SHOPPING LIST:\n• oats\n• salmon\n",
		"TIPS:\n• Prep on Sunday\n",
	} {
		assert.Contains(t, text, want)
	}
}

func TestMarkdown(t *testing.T) {
	md := WorkoutMarkdown(sampleWorkout(t))
	assert.Contains(t, md, "# Full  Body Blast")
	assert.Contains(t, md, "## Monday: Upper")
	assert.Contains(t, md, "| Push-up | 3 | 10 | 60s | chest, triceps |")

	md = MealMarkdown(sampleMeal(t))
	assert.Contains(t, md, "### Lunch: Chicken Salad")
	assert.Contains(t, md, "- Almonds (170 cal)")
	assert.Contains(t, md, "## Shopping List")
}

func TestNew(t *testing.T) {
	for _, f := range []string{"text", "json", "markdown", "MD"} {
		e, err := New(f)
		require.NoError(t, err, f)
		assert.NotEmpty(t, e.Extension())
	}
	_, err := New("pdf")
	assert.Error(t, err)
}

func TestJSONExporterKeepsData(t *testing.T) {
	plan := sampleMeal(t)
	var buf bytes.Buffer
	require.NoError(t, JSONExporter{}.ExportMeal(&buf, plan))

	var back core.MealPlan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, plan.Days[1].Snack1.Name, back.Days[1].Snack1.Name)
	assert.Equal(t, plan.Days[0].Totals(), back.Days[0].Totals())
}

func TestWriteWorkout(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteWorkout(dir, TextExporter{}, sampleWorkout(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Full_Body_Blast_workout_plan.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "WORKOUT PLAN: Full  Body Blast"))
}

func TestWriteMeal(t *testing.T) {
	path, err := WriteMeal(t.TempDir(), MarkdownExporter{}, sampleMeal(t))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "Lean_Week_meal_plan.md"))
}

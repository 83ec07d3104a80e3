package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhabedank/fitplan/internal/core"
)

// TextExporter writes the plain-text layout used for downloads and the
// clipboard.
type TextExporter struct{}

func (TextExporter) Name() string      { return "text" }
func (TextExporter) Extension() string { return ".txt" }

func (TextExporter) ExportWorkout(w io.Writer, plan *core.WorkoutPlan) error {
	_, err := io.WriteString(w, WorkoutText(plan))
	return err
}

func (TextExporter) ExportMeal(w io.Writer, plan *core.MealPlan) error {
	_, err := io.WriteString(w, MealText(plan))
	return err
}

// WorkoutText renders a workout plan as plain text. Every day and exercise
// appears in plan order.
func WorkoutText(plan *core.WorkoutPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "WORKOUT PLAN: %s\n", plan.DisplayName())
	if plan.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", plan.Description)
	}
	b.WriteString("\n")
	if plan.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s\n", plan.Duration)
	}
	if d := plan.DisplayDifficulty(); d != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", d)
	}

	for _, day := range plan.Days {
		b.WriteString("\n")
		if day.Focus != "" {
			fmt.Fprintf(&b, "DAY: %s - %s\n", day.Day, day.Focus)
		} else {
			fmt.Fprintf(&b, "DAY: %s\n", day.Day)
		}
		if day.TotalDuration != "" {
			fmt.Fprintf(&b, "Duration: %s\n", minutes(string(day.TotalDuration)))
		}

		if len(day.Warmup) > 0 {
			b.WriteString("\nWARM-UP:\n")
			bullets(&b, day.Warmup)
		}

		b.WriteString("\nEXERCISES:\n")
		for _, ex := range day.Exercises {
			fmt.Fprintf(&b, "\n%s\n", ex.Name)
			fmt.Fprintf(&b, "• Sets: %s | Reps: %s | Rest: %s\n", ex.Sets, ex.Reps, ex.RestTime)
			if len(ex.TargetMuscles) > 0 {
				fmt.Fprintf(&b, "• Target: %s\n", strings.Join(ex.TargetMuscles, ", "))
			}
			if ex.Description != "" {
				fmt.Fprintf(&b, "• %s\n", ex.Description)
			}
			if ex.Modifications.Easier != "" {
				fmt.Fprintf(&b, "• Easier: %s\n", ex.Modifications.Easier)
			}
			if ex.Modifications.Harder != "" {
				fmt.Fprintf(&b, "• Harder: %s\n", ex.Modifications.Harder)
			}
			if ex.Modifications.Note != "" {
				fmt.Fprintf(&b, "• Modifications: %s\n", ex.Modifications.Note)
			}
		}

		if len(day.Cooldown) > 0 {
			b.WriteString("\nCOOL-DOWN:\n")
			bullets(&b, day.Cooldown)
		}
	}

	if len(plan.Tips) > 0 {
		b.WriteString("\nTIPS:\n")
		bullets(&b, plan.Tips)
	}
	return b.String()
}

// MealText renders a meal plan as plain text. Every day, meal and snack
// appears in plan order, and every main meal is written in full.
func MealText(plan *core.MealPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "MEAL PLAN: %s\n", plan.DisplayName())
	if plan.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", plan.Description)
	}
	if plan.DietType != "" {
		fmt.Fprintf(&b, "\nDiet: %s\n", plan.DietType)
	}
	if plan.DailyCalories > 0 {
		fmt.Fprintf(&b, "Daily Calories: %s\n", plan.DailyCalories)
	}

	for _, day := range plan.Days {
		totals := day.Totals()
		fmt.Fprintf(&b, "\nDAY: %s\n", day.Day)
		fmt.Fprintf(&b, "Total Calories: %s\n", totals.Calories)
		fmt.Fprintf(&b, "Protein: %sg | Carbs: %sg | Fat: %sg\n", totals.Protein, totals.Carbs, totals.Fat)

		for _, lm := range day.MainMeals() {
			b.WriteString("\n")
			writeMeal(&b, strings.ToUpper(lm.Label), lm.Meal)
		}

		if snacks := day.AllSnacks(); len(snacks) > 0 {
			b.WriteString("\nSNACKS:\n")
			for _, s := range snacks {
				fmt.Fprintf(&b, "• %s (%s cal)\n", s.Name, s.Macros().Calories)
			}
		}
	}

	if len(plan.ShoppingList) > 0 {
		b.WriteString("\nSHOPPING LIST:\n")
		bullets(&b, plan.ShoppingList)
	}
	if len(plan.Tips) > 0 {
		b.WriteString("\nTIPS:\n")
		bullets(&b, plan.Tips)
	}
	return b.String()
}

func writeMeal(b *strings.Builder, label string, m *core.Meal) {
	fmt.Fprintf(b, "%s: %s\n", label, m.Name)
	if m.PrepTime > 0 || m.CookTime > 0 || m.Servings > 0 {
		fmt.Fprintf(b, "Prep: %smin | Cook: %smin | Serves: %s\n", m.PrepTime, m.CookTime, m.Servings)
	}
	n := m.Macros()
	fmt.Fprintf(b, "Calories: %s | P: %sg | C: %sg | F: %sg\n", n.Calories, n.Protein, n.Carbs, n.Fat)

	if len(m.Ingredients) > 0 {
		b.WriteString("\nIngredients:\n")
		bullets(b, m.Ingredients)
	}
	if len(m.Instructions) > 0 {
		b.WriteString("\nInstructions:\n")
		for i, step := range m.Instructions {
			fmt.Fprintf(b, "%d. %s\n", i+1, step)
		}
	}
	if len(m.Recipe) > 0 {
		fmt.Fprintf(b, "\nRecipe: %s\n", strings.Join(m.Recipe, " "))
	}
}

func bullets(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "• %s\n", it)
	}
}

// minutes appends " minutes" to bare numbers and leaves anything else alone.
func minutes(s string) string {
	if strings.Trim(s, "0123456789.") == "" {
		return s + " minutes"
	}
	return s
}

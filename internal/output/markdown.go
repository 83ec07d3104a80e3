package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhabedank/fitplan/internal/core"
)

// MarkdownExporter writes plans as Markdown, suitable for glamour.
type MarkdownExporter struct{}

func (MarkdownExporter) Name() string      { return "markdown" }
func (MarkdownExporter) Extension() string { return ".md" }

func (MarkdownExporter) ExportWorkout(w io.Writer, plan *core.WorkoutPlan) error {
	_, err := io.WriteString(w, WorkoutMarkdown(plan))
	return err
}

func (MarkdownExporter) ExportMeal(w io.Writer, plan *core.MealPlan) error {
	_, err := io.WriteString(w, MealMarkdown(plan))
	return err
}

// WorkoutMarkdown renders a workout plan as Markdown with one table per day.
func WorkoutMarkdown(plan *core.WorkoutPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", plan.DisplayName())
	if plan.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", plan.Description)
	}
	var meta []string
	if plan.Duration != "" {
		meta = append(meta, "**Duration:** "+string(plan.Duration))
	}
	if d := plan.DisplayDifficulty(); d != "" {
		meta = append(meta, "**Difficulty:** "+d)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "%s\n\n", strings.Join(meta, " · "))
	}

	for _, day := range plan.Days {
		if day.Focus != "" {
			fmt.Fprintf(&b, "## %s: %s\n\n", day.Day, day.Focus)
		} else {
			fmt.Fprintf(&b, "## %s\n\n", day.Day)
		}
		if len(day.Warmup) > 0 {
			fmt.Fprintf(&b, "**Warm-up:** %s\n\n", strings.Join(day.Warmup, "; "))
		}

		b.WriteString("| Exercise | Sets | Reps | Rest | Target |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, ex := range day.Exercises {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cell(ex.Name.String()), cell(string(ex.Sets)), cell(string(ex.Reps)), cell(string(ex.RestTime)),
				cell(strings.Join(ex.TargetMuscles, ", ")))
		}
		b.WriteString("\n")

		for _, ex := range day.Exercises {
			if ex.Description == "" && ex.Modifications.IsZero() {
				continue
			}
			fmt.Fprintf(&b, "- **%s**", ex.Name)
			if ex.Description != "" {
				fmt.Fprintf(&b, ": %s", ex.Description)
			}
			if ex.Modifications.Easier != "" {
				fmt.Fprintf(&b, " *Easier:* %s.", ex.Modifications.Easier)
			}
			if ex.Modifications.Harder != "" {
				fmt.Fprintf(&b, " *Harder:* %s.", ex.Modifications.Harder)
			}
			if ex.Modifications.Note != "" {
				fmt.Fprintf(&b, " *Modifications:* %s", ex.Modifications.Note)
			}
			b.WriteString("\n")
		}
		if len(day.Cooldown) > 0 {
			fmt.Fprintf(&b, "\n**Cool-down:** %s\n", strings.Join(day.Cooldown, "; "))
		}
		b.WriteString("\n")
	}

	if len(plan.Tips) > 0 {
		b.WriteString("## Tips\n\n")
		mdList(&b, plan.Tips)
	}
	return b.String()
}

// MealMarkdown renders a meal plan as Markdown.
func MealMarkdown(plan *core.MealPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", plan.DisplayName())
	if plan.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", plan.Description)
	}

	for _, day := range plan.Days {
		t := day.Totals()
		fmt.Fprintf(&b, "## %s\n\n", day.Day)
		fmt.Fprintf(&b, "**%s cal** · Protein %sg · Carbs %sg · Fat %sg\n\n", t.Calories, t.Protein, t.Carbs, t.Fat)

		for _, lm := range day.MainMeals() {
			m := lm.Meal
			n := m.Macros()
			fmt.Fprintf(&b, "### %s: %s\n\n", lm.Label, m.Name)
			fmt.Fprintf(&b, "%s cal · P %sg · C %sg · F %sg\n\n", n.Calories, n.Protein, n.Carbs, n.Fat)
			if len(m.Ingredients) > 0 {
				mdList(&b, m.Ingredients)
			}
			for i, step := range m.Instructions {
				fmt.Fprintf(&b, "%d. %s\n", i+1, step)
			}
			if len(m.Instructions) > 0 {
				b.WriteString("\n")
			}
			if len(m.Recipe) > 0 {
				fmt.Fprintf(&b, "%s\n\n", strings.Join(m.Recipe, " "))
			}
		}

		if snacks := day.AllSnacks(); len(snacks) > 0 {
			b.WriteString("### Snacks\n\n")
			for _, s := range snacks {
				fmt.Fprintf(&b, "- %s (%s cal)\n", s.Name, s.Macros().Calories)
			}
			b.WriteString("\n")
		}
	}

	if len(plan.ShoppingList) > 0 {
		b.WriteString("## Shopping List\n\n")
		mdList(&b, plan.ShoppingList)
	}
	if len(plan.Tips) > 0 {
		b.WriteString("## Tips\n\n")
		mdList(&b, plan.Tips)
	}
	return b.String()
}

func mdList(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

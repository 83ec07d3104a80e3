package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/dhabedank/fitplan/internal/core"
	"github.com/dhabedank/fitplan/internal/output"
)

var (
	showRaw   bool
	showWidth int
)

// ShowCmd renders a saved plan in the terminal.
var ShowCmd = &cobra.Command{
	Use:   "show <plan.json>",
	Short: "Render a saved plan in the terminal",
	Long: `Render a workout or meal plan saved with '--format json' as styled
markdown. The plan type is detected from its contents.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown without styling")
	ShowCmd.Flags().IntVar(&showWidth, "width", 80, "Word wrap width")
}

func runShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}

	md, err := planMarkdown(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return renderMarkdown(cmd.OutOrStdout(), md, showRaw, showWidth)
}

// detectPlanKind tells workout and meal plans apart by their days.
func detectPlanKind(data []byte) (core.PlanKind, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("not valid JSON")
	}
	days := gjson.GetBytes(data, "days")
	if !days.IsArray() {
		return "", fmt.Errorf("not a plan: missing days")
	}

	var kind core.PlanKind
	days.ForEach(func(_, day gjson.Result) bool {
		switch {
		case day.Get("exercises").Exists():
			kind = core.KindWorkout
		case day.Get("breakfast").Exists(), day.Get("lunch").Exists(),
			day.Get("dinner").Exists(), day.Get("snacks").Exists():
			kind = core.KindMeal
		}
		return kind == ""
	})
	if kind == "" {
		switch {
		case gjson.GetBytes(data, "shoppingList").Exists(), gjson.GetBytes(data, "dailyCalories").Exists():
			kind = core.KindMeal
		default:
			return "", fmt.Errorf("cannot tell whether this is a workout or meal plan")
		}
	}
	return kind, nil
}

func planMarkdown(data []byte) (string, error) {
	kind, err := detectPlanKind(data)
	if err != nil {
		return "", err
	}

	switch kind {
	case core.KindWorkout:
		var plan core.WorkoutPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return "", fmt.Errorf("failed to parse workout plan: %w", err)
		}
		return output.WorkoutMarkdown(&plan), nil
	default:
		var plan core.MealPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return "", fmt.Errorf("failed to parse meal plan: %w", err)
		}
		return output.MealMarkdown(&plan), nil
	}
}

func renderMarkdown(w io.Writer, md string, raw bool, width int) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/dhabedank/fitplan/internal/client"
	"github.com/dhabedank/fitplan/internal/config"
	"github.com/dhabedank/fitplan/internal/core"
	"github.com/dhabedank/fitplan/internal/output"
	"github.com/dhabedank/fitplan/internal/tui"
)

// GenerateCmd generates both plans from the saved profile without the form.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate plans from your saved profile",
	Long: `Generate a workout plan and a meal plan from the profile saved by
'fitplan start' and write them to files.

Formats:
  text      Plain text, the same layout as the in-app export (default)
  json      The plan objects as returned by the API
  markdown  Tables and lists, readable with 'fitplan show'`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addClientFlags(GenerateCmd)
	addFormatFlag(GenerateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exporter, err := output.New(cfg.Client.Format)
	if err != nil {
		return err
	}
	profile, err := savedProfile(cfg)
	if err != nil {
		return err
	}

	fmt.Println(tui.DefaultLoadingMessage)
	plans, err := client.New(cfg.Client.APIURL).GeneratePlans(cmd.Context(), profile)
	if err != nil {
		return fmt.Errorf("failed to generate plans: %w", err)
	}

	if err := writeWorkout(cfg.Client.OutputDir, exporter, plans.Workout); err != nil {
		return err
	}
	return writeMeal(cfg.Client.OutputDir, exporter, plans.Meal)
}

func savedProfile(cfg config.Config) (core.UserProfile, error) {
	profiles, err := profileStore(cfg)
	if err != nil {
		return core.UserProfile{}, err
	}
	profile, err := profiles.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return core.UserProfile{}, fmt.Errorf("no saved profile at %s - run 'fitplan start' first", profiles.Path())
	}
	return profile, err
}

func writeWorkout(dir string, e output.Exporter, plan *core.WorkoutPlan) error {
	path, err := output.WriteWorkout(dir, e, plan)
	if err != nil {
		return err
	}
	fmt.Printf("%s Workout plan %s written to %s\n",
		tui.SuccessStyle.Render("✓"), tui.ExerciseStyle.Render(plan.DisplayName()), path)
	return nil
}

func writeMeal(dir string, e output.Exporter, plan *core.MealPlan) error {
	path, err := output.WriteMeal(dir, e, plan)
	if err != nil {
		return err
	}
	fmt.Printf("%s Meal plan %s written to %s\n",
		tui.SuccessStyle.Render("✓"), tui.ExerciseStyle.Render(plan.DisplayName()), path)
	return nil
}

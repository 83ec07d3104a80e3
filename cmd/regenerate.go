package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhabedank/fitplan/internal/client"
	"github.com/dhabedank/fitplan/internal/core"
	"github.com/dhabedank/fitplan/internal/output"
)

var regeneratePlanID string

// RegenerateCmd replaces one plan, optionally keeping its id.
var RegenerateCmd = &cobra.Command{
	Use:   "regenerate <workout|meal>",
	Short: "Regenerate one plan from your saved profile",
	Long: `Ask for a fresh workout or meal plan using the saved profile.

With --plan-id the plan is regenerated through the customize endpoint and
keeps the given id.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(core.KindWorkout), string(core.KindMeal)},
	RunE:      runRegenerate,
}

func init() {
	addClientFlags(RegenerateCmd)
	addFormatFlag(RegenerateCmd)
	RegenerateCmd.Flags().StringVar(&regeneratePlanID, "plan-id", "", "Keep this plan id (uses the customize endpoint)")
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	kind, err := core.ParsePlanKind(args[0])
	if err != nil {
		return err
	}
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

	c := client.New(cfg.Client.APIURL)
	ctx := cmd.Context()
	fmt.Printf("Regenerating %s plan...\n", kind)

	switch kind {
	case core.KindWorkout:
		var plan *core.WorkoutPlan
		if regeneratePlanID != "" {
			plan, err = c.CustomizeWorkoutPlan(ctx, regeneratePlanID, profile)
		} else {
			plan, err = c.RegenerateWorkoutPlan(ctx, profile, nil)
		}
		if err != nil {
			return fmt.Errorf("failed to regenerate workout plan: %w", err)
		}
		return writeWorkout(cfg.Client.OutputDir, exporter, plan)

	default:
		var plan *core.MealPlan
		if regeneratePlanID != "" {
			plan, err = c.CustomizeMealPlan(ctx, regeneratePlanID, profile)
		} else {
			plan, err = c.RegenerateMealPlan(ctx, profile, nil)
		}
		if err != nil {
			return fmt.Errorf("failed to regenerate meal plan: %w", err)
		}
		return writeMeal(cfg.Client.OutputDir, exporter, plan)
	}
}

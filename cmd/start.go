package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhabedank/fitplan/internal/client"
	"github.com/dhabedank/fitplan/internal/core"
	"github.com/dhabedank/fitplan/internal/tui"
	"github.com/dhabedank/fitplan/internal/version"
)

var (
	startCalories     int
	startRestrictions []string
)

// StartCmd walks through the profile form and shows the generated plans.
var StartCmd = &cobra.Command{
	Use:   "start",
	Short: "Build your profile and generate workout and meal plans",
	Long: `Answer five quick questions (fitness level, goal, equipment, diet and
workout length), then FitPlan generates a 5-day workout plan and a 7-day
meal plan side by side.

Your answers are saved to ~/.fitplan/profile.json and pre-filled next time.
Requires a running API server (see 'fitplan serve').`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	addClientFlags(StartCmd)
	StartCmd.Flags().IntVar(&startCalories, "calories", 0, "Daily calorie target (overrides the goal's default)")
	StartCmd.Flags().StringSliceVar(&startRestrictions, "restrict", nil, "Dietary restrictions, comma separated (e.g. gluten,nuts)")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if version.IsFirstRun() {
		version.PrintFirstRunNotice(cmd.OutOrStdout())
	}

	profiles, err := profileStore(cfg)
	if err != nil {
		return err
	}
	initial, err := profiles.LoadOrDefault()
	if err != nil {
		fmt.Println(tui.WarningStyle.Render("!") + " Ignoring saved profile: " + err.Error())
		initial = core.DefaultProfile()
	}

	profile, ok, err := tui.RunWizard(initial)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	if cmd.Flags().Changed("calories") {
		calories := startCalories
		profile.CalorieGoal = &calories
	}
	if cmd.Flags().Changed("restrict") {
		profile.Restrictions = startRestrictions
	}

	if err := profiles.Save(profile); err != nil {
		return err
	}

	c := client.New(cfg.Client.APIURL)
	var plans *client.Plans
	err = tui.RunWithSpinner(cmd.Context(), tui.DefaultLoadingMessage, func(ctx context.Context) error {
		var err error
		plans, err = c.GeneratePlans(ctx, profile)
		return err
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Cancelled")
			return nil
		}
		return fmt.Errorf("failed to generate plans: %w", err)
	}

	return tui.RunPlanView(cmd.Context(), plans, tui.PlanViewOptions{
		Profile:   profile,
		Regen:     c,
		OutputDir: cfg.Client.OutputDir,
	})
}

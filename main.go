package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhabedank/fitplan/cmd"
	"github.com/dhabedank/fitplan/internal/version"
)

var appVersion = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitplan",
		Short: "Personalized workout and meal plans powered by AI",
		Long: `FitPlan turns a short fitness profile into a 5-day workout plan and a
7-day meal plan.

Run 'fitplan serve' to start the API, then 'fitplan start' to build your
profile and browse your plans.`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return cmd.InitLogger()
		},
		PersistentPostRun: func(c *cobra.Command, args []string) {
			cmd.SyncLogger()
			version.PrintUpdateNotice(os.Stderr, version.CheckForUpdate(context.Background(), appVersion))
		},
	}

	rootCmd.PersistentFlags().StringVar(&cmd.ConfigFile, "config", "", "Config file (default: .fitplan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&cmd.Verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(cmd.ServeCmd)
	rootCmd.AddCommand(cmd.StartCmd)
	rootCmd.AddCommand(cmd.GenerateCmd)
	rootCmd.AddCommand(cmd.RegenerateCmd)
	rootCmd.AddCommand(cmd.ShowCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	region        string // CLI override for aws.region
	awsProfile    string // CLI override for aws.profile
	dryRun        bool
	jsonOutput    bool
	compactOutput bool
	quietMode     bool
	verboseMode   bool
	showAll       bool // models: include non-activatable entries

	rootCmd = &cobra.Command{
		Use:   "bedrockctl",
		Short: "A cli to manage access to AWS Bedrock foundation models",
		Long: `bedrockctl automates the agreement flow that gates Bedrock
				foundation models, activating every invokable model in a
				region in one run instead of one console visit per model.`,
	}

	activateCmd = &cobra.Command{
		Use:   "activate",
		Short: "Activate all gated foundation models in the region",
		Run:   runActivate, // Defined in cmd_activate.go
	}

	modelsCmd = &cobra.Command{
		Use:   "models",
		Short: "List discovered foundation models and their filter status",
		Run:   runModels, // Defined in cmd_models.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&awsProfile, "profile", "", "AWS shared-config profile (overrides config file)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&compactOutput, "compact", false, "Compact JSON output (no indentation)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "No output, exit code only")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(activateCmd)
	activateCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Report which models would be activated without creating agreements")

	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolVar(&showAll, "all", false,
		"Include models that do not match the configured inference types")
}

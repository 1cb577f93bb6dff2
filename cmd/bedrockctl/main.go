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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/bedrockctl/cmd/bedrockctl/config"
	"github.com/AleutianAI/bedrockctl/pkg/logging"
	"github.com/AleutianAI/bedrockctl/pkg/ux"
)

// logger is the process logger, initialized in PersistentPreRun once the
// config is loaded. Commands that attach a log exporter replace it for
// the run (see cmd_activate.go).
var (
	logger *logging.Logger
	logCfg logging.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(CLIExitError)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if err := config.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(CLIExitError)
		}
		cfg := config.Global

		// Flags win over the config file.
		if region == "" {
			region = cfg.AWS.Region
		}
		if awsProfile == "" {
			awsProfile = cfg.AWS.Profile
		}

		level := logging.ParseLevel(cfg.Logging.Level)
		if verboseMode {
			level = logging.LevelDebug
		}
		logCfg = logging.Config{
			Level:   level,
			LogDir:  cfg.Logging.Dir,
			Service: "bedrockctl",
			Quiet:   quietMode || jsonOutput,
		}
		logger = logging.New(logCfg)

		// Machine-readable output must stay free of ANSI styling.
		if jsonOutput || quietMode {
			plain := true
			ux.SetPlainMode(&plain)
		}
	}
}

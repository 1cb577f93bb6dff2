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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/bedrockctl/cmd/bedrockctl/config"
	"github.com/AleutianAI/bedrockctl/pkg/logging"
)

// runActivate executes the `bedrockctl activate` command.
//
// # Description
//
// Runs the four-stage activation pipeline against the configured region
// and renders the resulting report. When an S3 audit bucket is
// configured, the run's logs are additionally exported there as JSON
// Lines batches keyed by the run ID.
//
// # Exit Codes
//
//   - 0: All attempted activations succeeded (or none were needed)
//   - 1: Run completed but some activations failed
//   - 2: The catalog listing failed; nothing was attempted
func runActivate(cmd *cobra.Command, args []string) {
	start := time.Now()
	ctx := context.Background()
	outCfg := OutputConfig{JSON: jsonOutput, Compact: compactOutput, Quiet: quietMode}
	cfg := config.Global

	runID := uuid.New().String()
	attachAuditExporter(ctx, cfg, runID)

	activator, err := NewDefaultModelActivator(ctx, ModelActivatorConfig{
		Region:         region,
		Profile:        awsProfile,
		InferenceTypes: cfg.Activation.InferenceTypes,
		DryRun:         dryRun,
		RunID:          runID,
		Logger:         logger,
	})
	if err != nil {
		exit(OutputResult(outCfg, "activate", start, nil, false, err))
	}

	var report *ActivationReport
	run := func() error {
		var runErr error
		report, runErr = activator.ActivateAll(ctx)
		return runErr
	}

	if quietMode || jsonOutput {
		err = run()
	} else {
		err = SpinWhileContext(ctx, "Activating Bedrock foundation models...", run)
	}
	if err != nil {
		exit(OutputResult(outCfg, "activate", start, nil, false, err))
	}

	if !outCfg.JSON && !outCfg.Quiet {
		fmt.Print(renderActivationSummary(report))
	}
	hasFailures := report.FailedActivations > 0
	exit(OutputResult(outCfg, "activate", start, report, hasFailures, nil))
}

// attachAuditExporter replaces the process logger with one that also
// exports to S3, when logging.s3_bucket is configured. Export failures
// are reported but never block the activation run.
func attachAuditExporter(ctx context.Context, cfg config.BedrockctlConfig, runID string) {
	if cfg.Logging.S3Bucket == "" {
		return
	}
	exporter, err := logging.NewS3Exporter(ctx, cfg.Logging.S3Bucket, region, cfg.Logging.S3Prefix, runID)
	if err != nil {
		logger.Warn("s3 audit export disabled", "error", err)
		return
	}
	exportCfg := logCfg
	exportCfg.Exporter = exporter
	logger.Close()
	logger = logging.New(exportCfg)
}

// exit flushes the logger before terminating. os.Exit skips deferred
// calls, so the flush has to happen here.
func exit(code int) {
	logger.Close()
	os.Exit(code)
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// summary.go renders activation reports and model lists for terminal
// display. All rendering functions return strings so the command layer
// decides where they go and tests can assert on content. Styling
// degrades to plain text when stdout is not a TTY (see pkg/ux).

package main

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/bedrockctl/pkg/ux"
)

// renderActivationSummary formats an ActivationReport for terminal display.
//
// # Description
//
// Produces the run header (region, run ID), the counter block, and one
// line per attempted model: a ✓ line with the model name and ID on
// success, a ✗ line with the failure reason on failure. Dry runs get a
// note instead of the outcome lines.
//
// # Inputs
//
//   - report: Completed activation report
//
// # Outputs
//
//   - string: Multi-line rendering, trailing newline included
func renderActivationSummary(report *ActivationReport) string {
	var b strings.Builder

	title := "Bedrock Model Activation Report"
	if ux.PlainMode() {
		b.WriteString(title + "\n")
	} else {
		b.WriteString(ux.Styles.Title.Render(title) + "\n")
	}
	b.WriteString(fmt.Sprintf("Region: %s    Run: %s\n\n", report.Region, report.RunID))

	writeCounter(&b, "Total models discovered", report.TotalModels)
	writeCounter(&b, "Matching inference types", report.FilteredModels)
	writeCounter(&b, "Already accessible", report.AlreadyAccessible)
	writeCounter(&b, "Activation attempts", report.AttemptedActivation)
	writeCounter(&b, "Succeeded", report.SuccessfulActivations)
	writeCounter(&b, "Failed", report.FailedActivations)

	if report.DryRun {
		pending := report.FilteredModels - report.AlreadyAccessible
		b.WriteString(fmt.Sprintf("\nDry run: %d model(s) would be activated. No agreements were created.\n", pending))
		return b.String()
	}

	if len(report.Outcomes) == 0 {
		b.WriteString("\nAll matching models are already accessible. Nothing to do.\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, outcome := range report.Outcomes {
		b.WriteString(renderOutcomeLine(outcome))
	}
	return b.String()
}

// writeCounter appends one aligned counter line.
func writeCounter(b *strings.Builder, label string, value int) {
	b.WriteString(fmt.Sprintf("  %-26s %d\n", label+":", value))
}

// renderOutcomeLine formats one model's activation outcome.
func renderOutcomeLine(outcome ActivationOutcome) string {
	name := outcome.ModelName
	if name == "" {
		name = outcome.ModelID
	}
	if outcome.Status == StatusSuccess {
		return fmt.Sprintf("  %s %s (%s)\n", ux.IconSuccess.Render(), name, outcome.ModelID)
	}
	return fmt.Sprintf("  %s %s (%s): %s\n", ux.IconError.Render(), name, outcome.ModelID, outcome.Reason)
}

// renderModelList formats the `models` command output.
//
// Activatable models get an arrow marker; models the filter would drop
// get a muted pending marker (shown only with --all).
func renderModelList(result ModelListResult) string {
	var b strings.Builder

	title := fmt.Sprintf("Bedrock Foundation Models (%s)", result.Region)
	if ux.PlainMode() {
		b.WriteString(title + "\n")
	} else {
		b.WriteString(ux.Styles.Title.Render(title) + "\n")
	}
	b.WriteString(fmt.Sprintf("%d discovered, %d activatable\n\n", result.Total, result.Filtered))

	for _, model := range result.Models {
		marker := ux.IconArrow.Render()
		if !model.Activatable {
			marker = ux.IconPending.Render()
		}
		b.WriteString(fmt.Sprintf("  %s %-50s %-20s %s\n",
			marker,
			model.ModelID,
			model.ProviderName,
			strings.Join(model.InferenceTypes, ",")))
	}
	return b.String()
}

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
	"strings"
	"testing"

	"github.com/AleutianAI/bedrockctl/pkg/ux"
)

// forcePlainOutput disables ANSI styling for deterministic assertions.
func forcePlainOutput(t *testing.T) {
	t.Helper()
	plain := true
	ux.SetPlainMode(&plain)
	t.Cleanup(func() { ux.SetPlainMode(nil) })
}

func sampleReport() *ActivationReport {
	return &ActivationReport{
		RunID:                 "run-1",
		Region:                "us-east-1",
		TotalModels:           10,
		FilteredModels:        6,
		AlreadyAccessible:     4,
		AttemptedActivation:   2,
		SuccessfulActivations: 1,
		FailedActivations:     1,
		Outcomes: []ActivationOutcome{
			{ModelID: "anthropic.claude-v2", ModelName: "Claude", Status: StatusSuccess, OfferToken: "tok-1"},
			{ModelID: "vendor.broken", ModelName: "Broken", Status: StatusFailed, Reason: FailureReasonNoOffers},
		},
	}
}

func TestRenderActivationSummary_Counters(t *testing.T) {
	forcePlainOutput(t)

	out := renderActivationSummary(sampleReport())

	for _, want := range []string{
		"Region: us-east-1",
		"Total models discovered:",
		"Matching inference types:",
		"Already accessible:",
		"Activation attempts:",
		"Succeeded:",
		"Failed:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderActivationSummary_OutcomeLines(t *testing.T) {
	forcePlainOutput(t)

	out := renderActivationSummary(sampleReport())

	if !strings.Contains(out, "✓ Claude (anthropic.claude-v2)") {
		t.Errorf("Missing success line:\n%s", out)
	}
	if !strings.Contains(out, "✗ Broken (vendor.broken): no_offers_available") {
		t.Errorf("Missing failure line with reason:\n%s", out)
	}
}

func TestRenderActivationSummary_DryRun(t *testing.T) {
	forcePlainOutput(t)

	report := sampleReport()
	report.DryRun = true
	report.AttemptedActivation = 0
	report.SuccessfulActivations = 0
	report.FailedActivations = 0
	report.Outcomes = nil

	out := renderActivationSummary(report)

	if !strings.Contains(out, "Dry run: 2 model(s) would be activated") {
		t.Errorf("Missing dry-run note:\n%s", out)
	}
	if strings.Contains(out, "✓") || strings.Contains(out, "✗") {
		t.Errorf("Dry run should not render outcome lines:\n%s", out)
	}
}

func TestRenderActivationSummary_NothingToDo(t *testing.T) {
	forcePlainOutput(t)

	report := sampleReport()
	report.AlreadyAccessible = 6
	report.AttemptedActivation = 0
	report.SuccessfulActivations = 0
	report.FailedActivations = 0
	report.Outcomes = nil

	out := renderActivationSummary(report)

	if !strings.Contains(out, "Nothing to do") {
		t.Errorf("Expected nothing-to-do note:\n%s", out)
	}
}

func TestRenderOutcomeLine_FallsBackToModelID(t *testing.T) {
	forcePlainOutput(t)

	line := renderOutcomeLine(ActivationOutcome{
		ModelID: "vendor.unnamed",
		Status:  StatusSuccess,
	})

	if !strings.Contains(line, "vendor.unnamed (vendor.unnamed)") {
		t.Errorf("Expected model ID fallback, got %q", line)
	}
}

func TestRenderModelList(t *testing.T) {
	forcePlainOutput(t)

	out := renderModelList(ModelListResult{
		Region:   "us-east-1",
		Total:    2,
		Filtered: 1,
		Models: []ModelListItem{
			{ModelID: "m1", ProviderName: "Anthropic", InferenceTypes: []string{"ON_DEMAND"}, Activatable: true},
			{ModelID: "m2", ProviderName: "Other", InferenceTypes: []string{"PROVISIONED"}, Activatable: false},
		},
	})

	if !strings.Contains(out, "2 discovered, 1 activatable") {
		t.Errorf("Missing count line:\n%s", out)
	}
	if !strings.Contains(out, "→ m1") {
		t.Errorf("Missing activatable marker:\n%s", out)
	}
	if !strings.Contains(out, "○ m2") {
		t.Errorf("Missing non-activatable marker:\n%s", out)
	}
}

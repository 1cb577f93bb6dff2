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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutputResult_QuietMode(t *testing.T) {
	cfg := OutputConfig{Quiet: true}
	start := time.Now()

	assert.Equal(t, CLIExitSuccess, OutputResult(cfg, "activate", start, nil, false, nil))
	assert.Equal(t, CLIExitFindings, OutputResult(cfg, "activate", start, nil, true, nil))
	assert.Equal(t, CLIExitError, OutputResult(cfg, "activate", start, nil, false, errors.New("boom")))
}

func TestOutputResult_ErrorBeatsFindings(t *testing.T) {
	cfg := OutputConfig{Quiet: true}

	code := OutputResult(cfg, "activate", time.Now(), nil, true, errors.New("boom"))

	assert.Equal(t, CLIExitError, code)
}

func TestOutputResult_TextMode(t *testing.T) {
	cfg := OutputConfig{}

	assert.Equal(t, CLIExitSuccess, OutputResult(cfg, "models", time.Now(), "data", false, nil))
	assert.Equal(t, CLIExitFindings, OutputResult(cfg, "activate", time.Now(), "data", true, nil))
}

func TestBuildModelList_ActivatableOnly(t *testing.T) {
	models := []ModelSummary{
		{ModelID: "m1", InferenceTypesSupported: []string{InferenceTypeOnDemand}},
		{ModelID: "m2", InferenceTypesSupported: []string{"PROVISIONED"}},
	}

	result := buildModelList("us-east-1", models, []string{InferenceTypeOnDemand}, false)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Filtered)
	assert.Len(t, result.Models, 1)
	assert.Equal(t, "m1", result.Models[0].ModelID)
	assert.True(t, result.Models[0].Activatable)
}

func TestBuildModelList_IncludeAll(t *testing.T) {
	models := []ModelSummary{
		{ModelID: "m1", InferenceTypesSupported: []string{InferenceTypeOnDemand}},
		{ModelID: "m2", InferenceTypesSupported: []string{"PROVISIONED"}},
	}

	result := buildModelList("us-east-1", models, []string{InferenceTypeOnDemand}, true)

	assert.Len(t, result.Models, 2)
	assert.True(t, result.Models[0].Activatable)
	assert.False(t, result.Models[1].Activatable)
}

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
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/bedrockctl/cmd/bedrockctl/config"
)

// runModels executes the `bedrockctl models` command.
//
// Lists the region's foundation model catalog and marks each model as
// activatable or not under the configured inference types. By default
// only activatable models are shown; --all includes the rest.
func runModels(cmd *cobra.Command, args []string) {
	start := time.Now()
	ctx := context.Background()
	outCfg := OutputConfig{JSON: jsonOutput, Compact: compactOutput, Quiet: quietMode}
	cfg := config.Global

	catalog, err := NewBedrockClient(ctx, region, awsProfile)
	if err != nil {
		exit(OutputResult(outCfg, "models", start, nil, false, err))
	}

	models, err := catalog.ListFoundationModels(ctx)
	if err != nil {
		exit(OutputResult(outCfg, "models", start, nil, false, err))
	}

	result := buildModelList(region, models, cfg.Activation.InferenceTypes, showAll)

	if !outCfg.JSON && !outCfg.Quiet {
		fmt.Print(renderModelList(result))
	}
	exit(OutputResult(outCfg, "models", start, result, false, nil))
}

// buildModelList assembles the list output, reusing the pipeline's
// filter to decide which models count as activatable.
func buildModelList(region string, models []ModelSummary, inferenceTypes []string, includeAll bool) ModelListResult {
	filtered := filterActivatableModels(models, inferenceTypes)
	activatable := make(map[string]struct{}, len(filtered))
	for _, model := range filtered {
		activatable[model.ModelID] = struct{}{}
	}

	items := make([]ModelListItem, 0, len(models))
	for _, model := range models {
		_, ok := activatable[model.ModelID]
		if !ok && !includeAll {
			continue
		}
		items = append(items, ModelListItem{
			ModelID:        model.ModelID,
			ModelName:      model.ModelName,
			ProviderName:   model.ProviderName,
			InferenceTypes: model.InferenceTypesSupported,
			Activatable:    ok,
		})
	}

	return ModelListResult{
		Region:   region,
		Total:    len(models),
		Filtered: len(filtered),
		Models:   items,
	}
}

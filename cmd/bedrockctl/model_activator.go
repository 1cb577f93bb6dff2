// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package main contains model_activator.go which runs the four-stage model
activation pipeline.

# Problem Statement

A freshly provisioned AWS account can list hundreds of Bedrock foundation
models, but most of them are gated behind per-model agreements. Activating
them by hand means visiting every model's access page in the console. The
pipeline needs to discover the catalog, narrow it to models that are usable
for invocation, find which of those are still gated, and accept the
agreement for each one — while one bad model must never abort the run.

# Solution

DefaultModelActivator runs four sequential stages against a BedrockCatalog:

	┌──────────────────────────────────────────────────────────────┐
	│ Stage 1  DISCOVER   ListFoundationModels       (fatal on err)│
	│ Stage 2  FILTER     keep invokable inference types    (pure) │
	│ Stage 3  CLASSIFY   accessible vs needs-access  (per model)  │
	│ Stage 4  REMEDIATE  offers → accept first       (per model)  │
	└──────────────────────────────────────────────────────────────┘

Stages 3 and 4 contain their failures per model: a failed availability check
conservatively treats the model as needing access, and a failed activation
becomes a failed ActivationOutcome rather than an error return. Only the
stage 1 listing can fail the whole run, because without a catalog there is
nothing to do.

The report's counters always reconcile: FilteredModels equals
AlreadyAccessible plus AttemptedActivation, and AttemptedActivation equals
SuccessfulActivations plus FailedActivations.

# Usage

	activator, err := NewDefaultModelActivator(ctx, ModelActivatorConfig{
	    Region:         "us-east-1",
	    InferenceTypes: []string{InferenceTypeOnDemand, InferenceTypeInferenceProfile},
	})
	if err != nil {
	    return err
	}

	report, err := activator.ActivateAll(ctx)
	if err != nil {
	    return err // catalog listing failed
	}
	fmt.Printf("activated %d of %d\n", report.SuccessfulActivations, report.AttemptedActivation)

# Related Files

  - bedrock_client.go: The BedrockCatalog implementation
  - summary.go: Report rendering
  - cmd_activate.go: Integration point
*/
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/bedrockctl/pkg/logging"
)

// -----------------------------------------------------------------------------
// Outcome Types
// -----------------------------------------------------------------------------

const (
	// StatusSuccess marks a model whose agreement was created.
	StatusSuccess = "success"

	// StatusFailed marks a model whose activation attempt failed.
	StatusFailed = "failed"
)

// FailureReason explains why a model's activation attempt failed.
type FailureReason string

const (
	// FailureReasonNone is the zero value for successful outcomes.
	FailureReasonNone FailureReason = ""

	// FailureReasonNoOffers means the model exposed no agreement offers,
	// or the offer listing itself failed.
	FailureReasonNoOffers FailureReason = "no_offers_available"

	// FailureReasonNoOfferToken means the selected offer carried no token.
	FailureReasonNoOfferToken FailureReason = "no_offer_token"

	// FailureReasonAgreementFailed means the agreement creation call failed.
	FailureReasonAgreementFailed FailureReason = "agreement_creation_failed"
)

// String returns the reason for logging and report rendering.
func (r FailureReason) String() string {
	return string(r)
}

// -----------------------------------------------------------------------------
// Data Types
// -----------------------------------------------------------------------------

// ActivationOutcome records the result of one model's activation attempt.
type ActivationOutcome struct {
	// ModelID is the model the attempt targeted.
	ModelID string `json:"model_id"`

	// ModelName is the human-readable model name.
	ModelName string `json:"model_name"`

	// Status is StatusSuccess or StatusFailed.
	Status string `json:"status"`

	// OfferToken is the token of the accepted offer (success only).
	OfferToken string `json:"offer_token,omitempty"`

	// Reason explains the failure (failed only).
	Reason FailureReason `json:"reason,omitempty"`
}

// ActivationReport is the aggregate result of one pipeline run.
// It is fully populated before being returned and never mutated afterward.
type ActivationReport struct {
	// RunID uniquely identifies this run in logs and exports.
	RunID string `json:"run_id"`

	// Region is the AWS region the run targeted.
	Region string `json:"region"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock length of the run.
	Duration time.Duration `json:"duration_ns"`

	// DryRun reports whether remediation was skipped.
	DryRun bool `json:"dry_run"`

	// TotalModels is the size of the discovered catalog.
	TotalModels int `json:"total_models"`

	// FilteredModels is how many models survived the inference-type filter.
	FilteredModels int `json:"filtered_models"`

	// AlreadyAccessible is how many filtered models needed no action.
	AlreadyAccessible int `json:"already_accessible"`

	// AttemptedActivation is how many models went through remediation.
	AttemptedActivation int `json:"attempted_activation"`

	// SuccessfulActivations counts outcomes with StatusSuccess.
	SuccessfulActivations int `json:"successful_activations"`

	// FailedActivations counts outcomes with StatusFailed.
	FailedActivations int `json:"failed_activations"`

	// Outcomes holds one entry per attempted model, in processing order.
	Outcomes []ActivationOutcome `json:"outcomes"`
}

// ModelActivatorConfig holds configuration for creating a model activator.
type ModelActivatorConfig struct {
	// Region is the AWS region to operate in.
	Region string

	// Profile is an optional shared-config credentials profile.
	Profile string

	// InferenceTypes are the invocation modes that make a model worth
	// activating. Empty means the default invokable set.
	InferenceTypes []string

	// DryRun stops the pipeline after classification; no offers are
	// listed and no agreements are created.
	DryRun bool

	// RunID labels the run in the report and in log exports. Empty
	// means a fresh UUID.
	RunID string

	// Logger receives structured pipeline logs. Nil means the process
	// default logger.
	Logger *logging.Logger
}

// -----------------------------------------------------------------------------
// Interface Definition
// -----------------------------------------------------------------------------

// ModelActivator defines the contract for running the activation pipeline.
type ModelActivator interface {
	// ActivateAll runs discovery, filtering, classification and
	// remediation, returning the aggregate report. The returned error is
	// non-nil only when the catalog listing itself fails.
	ActivateAll(ctx context.Context) (*ActivationReport, error)
}

// -----------------------------------------------------------------------------
// Struct Definition
// -----------------------------------------------------------------------------

// DefaultModelActivator is the standard ModelActivator implementation.
type DefaultModelActivator struct {
	catalog        BedrockCatalog
	inferenceTypes []string
	dryRun         bool
	runID          string
	logger         *logging.Logger
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// NewDefaultModelActivator creates an activator with a real catalog client.
//
// # Description
//
// Builds a BedrockClient for the configured region/profile and wires it
// into the activator. Missing config fields fall back to defaults: the
// invokable inference types and the process logger.
//
// # Inputs
//
//   - ctx: Context for AWS configuration loading
//   - cfg: Activator configuration
//
// # Outputs
//
//   - *DefaultModelActivator: Configured activator
//   - error: Non-nil if the AWS configuration cannot be loaded
func NewDefaultModelActivator(ctx context.Context, cfg ModelActivatorConfig) (*DefaultModelActivator, error) {
	catalog, err := NewBedrockClient(ctx, cfg.Region, cfg.Profile)
	if err != nil {
		return nil, err
	}
	return NewDefaultModelActivatorWithDeps(catalog, cfg), nil
}

// NewDefaultModelActivatorWithDeps creates an activator with an injected
// catalog. Used by tests and by callers that share a catalog client.
func NewDefaultModelActivatorWithDeps(catalog BedrockCatalog, cfg ModelActivatorConfig) *DefaultModelActivator {
	inferenceTypes := cfg.InferenceTypes
	if len(inferenceTypes) == 0 {
		inferenceTypes = []string{InferenceTypeOnDemand, InferenceTypeInferenceProfile}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	return &DefaultModelActivator{
		catalog:        catalog,
		inferenceTypes: inferenceTypes,
		dryRun:         cfg.DryRun,
		runID:          runID,
		logger:         logger,
	}
}

// -----------------------------------------------------------------------------
// Interface Methods
// -----------------------------------------------------------------------------

// ActivateAll runs the full four-stage pipeline.
//
// # Description
//
// Lists the catalog (fatal on failure), filters it to invokable models,
// classifies each filtered model as accessible or needing access, then
// attempts one activation per gated model. Per-model failures become
// failed outcomes; the run always completes once the listing succeeds.
// In dry-run mode the pipeline stops after classification.
//
// # Inputs
//
//   - ctx: Context for cancellation of remote calls
//
// # Outputs
//
//   - *ActivationReport: Aggregate counters plus per-model outcomes
//   - error: Non-nil only when the catalog listing fails
func (a *DefaultModelActivator) ActivateAll(ctx context.Context) (*ActivationReport, error) {
	report := a.initializeReport()

	a.logger.Info("starting model activation run",
		"run_id", report.RunID,
		"region", report.Region,
		"dry_run", a.dryRun)

	models, err := a.catalog.ListFoundationModels(ctx)
	if err != nil {
		a.logger.Error("model catalog listing failed", "error", err)
		return nil, err
	}
	report.TotalModels = len(models)

	filtered := filterActivatableModels(models, a.inferenceTypes)
	report.FilteredModels = len(filtered)
	a.logger.Info("filtered model catalog",
		"total", report.TotalModels,
		"filtered", report.FilteredModels)

	accessible, needsAccess := a.classifyModelAccess(ctx, filtered)
	report.AlreadyAccessible = len(accessible)

	if a.dryRun {
		for _, model := range needsAccess {
			a.logger.Info("would activate model",
				"model_id", model.ModelID,
				"model_name", model.ModelName)
		}
		a.finalizeReport(report)
		return report, nil
	}

	for _, model := range needsAccess {
		outcome := a.activateSingleModel(ctx, model)
		report.Outcomes = append(report.Outcomes, outcome)
	}

	a.finalizeReport(report)
	a.logger.Info("model activation run complete",
		"run_id", report.RunID,
		"attempted", report.AttemptedActivation,
		"succeeded", report.SuccessfulActivations,
		"failed", report.FailedActivations)
	return report, nil
}

// -----------------------------------------------------------------------------
// Pipeline Stages
// -----------------------------------------------------------------------------

// filterActivatableModels keeps models supporting at least one of the
// given inference types. Pure and order-preserving.
func filterActivatableModels(models []ModelSummary, inferenceTypes []string) []ModelSummary {
	wanted := make(map[string]struct{}, len(inferenceTypes))
	for _, it := range inferenceTypes {
		wanted[it] = struct{}{}
	}

	filtered := make([]ModelSummary, 0, len(models))
	for _, model := range models {
		for _, it := range model.InferenceTypesSupported {
			if _, ok := wanted[it]; ok {
				filtered = append(filtered, model)
				break
			}
		}
	}
	return filtered
}

// classifyModelAccess partitions models into those already invokable and
// those needing an agreement.
//
// # Description
//
// Checks each model's availability independently. A model needs access
// when its agreement status is NOT_AVAILABLE. A failed availability check
// also routes the model to the needs-access side: attempting an activation
// that turns out unnecessary is harmless, while skipping a gated model
// silently defeats the run's purpose. Both slices preserve input order,
// and every input model lands in exactly one of them.
//
// # Inputs
//
//   - ctx: Context for the per-model availability calls
//   - models: Filtered model catalog
//
// # Outputs
//
//   - accessible: Models requiring no action
//   - needsAccess: Models to remediate
func (a *DefaultModelActivator) classifyModelAccess(ctx context.Context, models []ModelSummary) (accessible, needsAccess []ModelSummary) {
	accessible = make([]ModelSummary, 0, len(models))
	needsAccess = make([]ModelSummary, 0)

	for _, model := range models {
		availability, err := a.catalog.GetModelAvailability(ctx, model.ModelID)
		if err != nil {
			a.logger.Warn("availability check failed, assuming model needs access",
				"model_id", model.ModelID,
				"error", err)
			needsAccess = append(needsAccess, model)
			continue
		}
		if availability.AgreementStatus == AgreementStatusNotAvailable {
			needsAccess = append(needsAccess, model)
		} else {
			accessible = append(accessible, model)
		}
	}
	return accessible, needsAccess
}

// activateSingleModel attempts one model's activation and records the result.
//
// # Description
//
// Lists the model's agreement offers and accepts the first one. Every
// failure path produces a failed outcome with a reason instead of an
// error: no offers (or a failed offer listing) yields
// FailureReasonNoOffers, a tokenless first offer yields
// FailureReasonNoOfferToken, and a rejected agreement creation yields
// FailureReasonAgreementFailed.
//
// # Inputs
//
//   - ctx: Context for the remote calls
//   - model: The gated model to activate
//
// # Outputs
//
//   - ActivationOutcome: Success with the accepted token, or failure with
//     a reason
func (a *DefaultModelActivator) activateSingleModel(ctx context.Context, model ModelSummary) ActivationOutcome {
	outcome := ActivationOutcome{
		ModelID:   model.ModelID,
		ModelName: model.ModelName,
	}

	offers, err := a.catalog.ListAgreementOffers(ctx, model.ModelID)
	if err != nil || len(offers) == 0 {
		if err != nil {
			a.logger.Warn("offer listing failed",
				"model_id", model.ModelID,
				"error", err)
		}
		outcome.Status = StatusFailed
		outcome.Reason = FailureReasonNoOffers
		return outcome
	}

	offer := offers[0]
	if offer.OfferToken == "" {
		outcome.Status = StatusFailed
		outcome.Reason = FailureReasonNoOfferToken
		return outcome
	}

	if err := a.catalog.CreateAgreement(ctx, model.ModelID, offer.OfferToken); err != nil {
		a.logger.Warn("agreement creation failed",
			"model_id", model.ModelID,
			"error", err)
		outcome.Status = StatusFailed
		outcome.Reason = FailureReasonAgreementFailed
		return outcome
	}

	a.logger.Info("model activated",
		"model_id", model.ModelID,
		"offer_id", offer.OfferID)
	outcome.Status = StatusSuccess
	outcome.OfferToken = offer.OfferToken
	return outcome
}

// -----------------------------------------------------------------------------
// Helper Methods
// -----------------------------------------------------------------------------

// initializeReport creates a report with identity fields populated.
func (a *DefaultModelActivator) initializeReport() *ActivationReport {
	return &ActivationReport{
		RunID:     a.runID,
		Region:    a.catalog.GetRegion(),
		StartedAt: time.Now(),
		DryRun:    a.dryRun,
		Outcomes:  make([]ActivationOutcome, 0),
	}
}

// finalizeReport computes the aggregate counters from the outcomes.
func (a *DefaultModelActivator) finalizeReport(report *ActivationReport) {
	for _, outcome := range report.Outcomes {
		if outcome.Status == StatusSuccess {
			report.SuccessfulActivations++
		} else {
			report.FailedActivations++
		}
	}
	report.AttemptedActivation = len(report.Outcomes)
	report.Duration = time.Since(report.StartedAt)
}

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
Package main contains bedrock_client.go which provides the remote catalog
operations for the AWS Bedrock model service.

# Problem Statement

When operators run `bedrockctl activate`, the activation pipeline needs four
remote operations against the Bedrock control plane:

 1. Listing the foundation model catalog
 2. Checking per-model agreement/authorization availability
 3. Fetching agreement offers for a gated model
 4. Accepting an offer to create the model agreement

Previously operators clicked through every model's approval flow in the AWS
console, one model at a time.

# Solution

BedrockCatalog exposes the four operations behind one interface:

	┌─────────────────────────────────────────────────────────────────┐
	│                    bedrockctl activate                          │
	├─────────────────────────────────────────────────────────────────┤
	│                                                                 │
	│  1. BedrockCatalog.ListFoundationModels()   ← full catalog      │
	│                                                                 │
	│  2. BedrockCatalog.GetModelAvailability()   ← per filtered model│
	│                                                                 │
	│  3. IF agreement status == NOT_AVAILABLE:                       │
	│     ├─ BedrockCatalog.ListAgreementOffers() ← offer tokens      │
	│     └─ BedrockCatalog.CreateAgreement()     ← accept offer[0]   │
	│                                                                 │
	└─────────────────────────────────────────────────────────────────┘

Every operation fails with a *CatalogError whose Type identifies the failed
operation, so callers can convert failures into per-model outcomes at the
call site instead of relying on catch-all handling.

# Wire Shaping

SDK response structs are converted to plain domain types
(ModelSummary, ModelAvailability, AgreementOffer) at this boundary. The
shaping functions are pure and tolerate missing fields: a nil agreement
availability block maps to AgreementStatusUnknown, a nil offer token maps to
an empty string. Nothing beyond this file imports the Bedrock SDK types.

# Usage

	catalog, err := NewBedrockClient(ctx, "us-east-1", "")
	if err != nil {
	    log.Fatal(err)
	}

	models, err := catalog.ListFoundationModels(ctx)

	availability, err := catalog.GetModelAvailability(ctx, "anthropic.claude-v2")
	if availability.AgreementStatus == AgreementStatusNotAvailable {
	    offers, _ := catalog.ListAgreementOffers(ctx, "anthropic.claude-v2")
	    _ = catalog.CreateAgreement(ctx, "anthropic.claude-v2", offers[0].OfferToken)
	}

# Configuration

Credentials come from the standard AWS chain (env, shared config, IMDS).
The region is always explicit; a non-empty profile selects a shared-config
credentials profile.

# Related Files

  - model_activator.go: The four-stage activation pipeline
  - cmd_activate.go: Integration point
  - config/types.go: Region/profile configuration
*/
package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"
)

// -----------------------------------------------------------------------------
// Agreement Status Values
// -----------------------------------------------------------------------------

const (
	// AgreementStatusAvailable means the model agreement is already in place.
	AgreementStatusAvailable = "AVAILABLE"

	// AgreementStatusNotAvailable means the model needs an agreement
	// before it can be invoked.
	AgreementStatusNotAvailable = "NOT_AVAILABLE"

	// AgreementStatusUnknown is reported when the service omits the
	// agreement block entirely.
	AgreementStatusUnknown = "UNKNOWN"
)

const (
	// InferenceTypeOnDemand is pay-per-call invocation.
	InferenceTypeOnDemand = "ON_DEMAND"

	// InferenceTypeInferenceProfile is invocation through an aggregated
	// inference profile.
	InferenceTypeInferenceProfile = "INFERENCE_PROFILE"
)

// -----------------------------------------------------------------------------
// Error Types
// -----------------------------------------------------------------------------

// CatalogErrorType categorizes remote catalog failures for programmatic handling.
type CatalogErrorType int

const (
	// CatalogErrorListFailed indicates the catalog listing failed.
	// This is the only fatal error in the pipeline.
	CatalogErrorListFailed CatalogErrorType = iota

	// CatalogErrorAvailabilityFailed indicates a per-model availability
	// check failed.
	CatalogErrorAvailabilityFailed

	// CatalogErrorOffersFailed indicates the offer listing for a model failed.
	CatalogErrorOffersFailed

	// CatalogErrorAgreementFailed indicates the agreement creation failed.
	CatalogErrorAgreementFailed
)

// String returns the error type as a string for logging.
func (t CatalogErrorType) String() string {
	switch t {
	case CatalogErrorListFailed:
		return "LIST_MODELS_FAILED"
	case CatalogErrorAvailabilityFailed:
		return "AVAILABILITY_CHECK_FAILED"
	case CatalogErrorOffersFailed:
		return "LIST_OFFERS_FAILED"
	case CatalogErrorAgreementFailed:
		return "CREATE_AGREEMENT_FAILED"
	default:
		return "UNKNOWN"
	}
}

// CatalogError provides structured error information for catalog operations.
type CatalogError struct {
	// Type categorizes the error for programmatic handling.
	Type CatalogErrorType

	// ModelID is the model the operation targeted (empty for listing).
	ModelID string

	// Message is a human-readable error description.
	Message string

	// Detail provides technical information for debugging.
	Detail string

	// Remediation suggests how to fix the issue.
	Remediation string
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	return e.Message
}

// FullError returns a detailed error message including remediation.
func (e *CatalogError) FullError() string {
	var buf bytes.Buffer
	buf.WriteString(e.Message)
	if e.ModelID != "" {
		buf.WriteString(fmt.Sprintf(" (model: %s)", e.ModelID))
	}
	if e.Detail != "" {
		buf.WriteString("\n\nDetails: ")
		buf.WriteString(e.Detail)
	}
	if e.Remediation != "" {
		buf.WriteString("\n\nTo fix:\n")
		buf.WriteString(e.Remediation)
	}
	return buf.String()
}

// -----------------------------------------------------------------------------
// Data Types
// -----------------------------------------------------------------------------

// ModelSummary is an immutable catalog snapshot of one foundation model.
type ModelSummary struct {
	// ModelID is the unique model identifier (e.g., "anthropic.claude-v2").
	ModelID string

	// ModelName is the human-readable model name.
	ModelName string

	// ProviderName is the model vendor (e.g., "Anthropic").
	ProviderName string

	// InferenceTypesSupported lists the invocation modes the model supports.
	InferenceTypesSupported []string
}

// ModelAvailability is the per-model agreement/authorization state
// reported by the service.
type ModelAvailability struct {
	// AgreementStatus is AVAILABLE, NOT_AVAILABLE or UNKNOWN.
	AgreementStatus string

	// AuthorizationStatus reports account-level authorization
	// (informational; not part of the classification rule).
	AuthorizationStatus string
}

// AgreementOffer is one acceptable agreement version for a model.
// The token is opaque and must be passed back verbatim.
type AgreementOffer struct {
	// OfferID identifies the offer.
	OfferID string

	// OfferToken is the opaque credential required to accept the offer.
	OfferToken string
}

// -----------------------------------------------------------------------------
// Interface Definition
// -----------------------------------------------------------------------------

// BedrockCatalog defines the contract for the remote model catalog.
// The interface enables testing the activation pipeline with
// deterministic in-memory fakes instead of a live AWS dependency.
type BedrockCatalog interface {
	// ListFoundationModels returns the full model catalog.
	// Fails with *CatalogError (Type=CatalogErrorListFailed).
	ListFoundationModels(ctx context.Context) ([]ModelSummary, error)

	// GetModelAvailability reports agreement/authorization state for one model.
	// Fails with *CatalogError (Type=CatalogErrorAvailabilityFailed).
	GetModelAvailability(ctx context.Context, modelID string) (ModelAvailability, error)

	// ListAgreementOffers returns the agreement offers for one model.
	// Fails with *CatalogError (Type=CatalogErrorOffersFailed).
	ListAgreementOffers(ctx context.Context, modelID string) ([]AgreementOffer, error)

	// CreateAgreement accepts an offer for a model.
	// Fails with *CatalogError (Type=CatalogErrorAgreementFailed).
	CreateAgreement(ctx context.Context, modelID, offerToken string) error

	// GetRegion returns the region the catalog is bound to.
	GetRegion() string
}

// -----------------------------------------------------------------------------
// Struct Definition
// -----------------------------------------------------------------------------

// bedrockAPI is the slice of the SDK client this file needs.
// Narrowed so tests can substitute a fake without real AWS calls.
type bedrockAPI interface {
	ListFoundationModels(ctx context.Context, params *bedrock.ListFoundationModelsInput, optFns ...func(*bedrock.Options)) (*bedrock.ListFoundationModelsOutput, error)
	GetFoundationModelAvailability(ctx context.Context, params *bedrock.GetFoundationModelAvailabilityInput, optFns ...func(*bedrock.Options)) (*bedrock.GetFoundationModelAvailabilityOutput, error)
	ListFoundationModelAgreementOffers(ctx context.Context, params *bedrock.ListFoundationModelAgreementOffersInput, optFns ...func(*bedrock.Options)) (*bedrock.ListFoundationModelAgreementOffersOutput, error)
	CreateFoundationModelAgreement(ctx context.Context, params *bedrock.CreateFoundationModelAgreementInput, optFns ...func(*bedrock.Options)) (*bedrock.CreateFoundationModelAgreementOutput, error)
}

// BedrockClient implements BedrockCatalog on the AWS SDK.
type BedrockClient struct {
	// api is the Bedrock control-plane client.
	api bedrockAPI

	// region is the region every request is issued against.
	region string
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// NewBedrockClient creates a catalog client for the given region.
//
// # Description
//
// Loads the default AWS credential chain, pinned to an explicit region
// so test doubles and multi-region runs never depend on ambient state.
// A non-empty profile selects a shared-config credentials profile.
//
// # Inputs
//
//   - ctx: Context for the config load
//   - region: AWS region for Bedrock operations (e.g., "us-east-1")
//   - profile: shared-config profile name, or "" for the default chain
//
// # Outputs
//
//   - *BedrockClient: Configured client instance
//   - error: Non-nil if the AWS configuration cannot be loaded
func NewBedrockClient(ctx context.Context, region, profile string) (*BedrockClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewBedrockClientWithAPI(bedrock.NewFromConfig(cfg), region), nil
}

// NewBedrockClientWithAPI creates a catalog client with an injected SDK
// client. Used by tests.
func NewBedrockClientWithAPI(api bedrockAPI, region string) *BedrockClient {
	return &BedrockClient{
		api:    api,
		region: region,
	}
}

// -----------------------------------------------------------------------------
// Interface Methods
// -----------------------------------------------------------------------------

// ListFoundationModels returns the full model catalog for the region.
func (c *BedrockClient) ListFoundationModels(ctx context.Context) ([]ModelSummary, error) {
	out, err := c.api.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{})
	if err != nil {
		return nil, &CatalogError{
			Type:        CatalogErrorListFailed,
			Message:     "failed to list foundation models",
			Detail:      err.Error(),
			Remediation: "Verify AWS credentials and that the account has bedrock:ListFoundationModels permission in " + c.region,
		}
	}

	models := make([]ModelSummary, 0, len(out.ModelSummaries))
	for _, summary := range out.ModelSummaries {
		models = append(models, modelSummaryFromSDK(summary))
	}
	return models, nil
}

// GetModelAvailability reports the agreement state for one model.
func (c *BedrockClient) GetModelAvailability(ctx context.Context, modelID string) (ModelAvailability, error) {
	out, err := c.api.GetFoundationModelAvailability(ctx, &bedrock.GetFoundationModelAvailabilityInput{
		ModelId: aws.String(modelID),
	})
	if err != nil {
		return ModelAvailability{}, &CatalogError{
			Type:    CatalogErrorAvailabilityFailed,
			ModelID: modelID,
			Message: "failed to check model availability",
			Detail:  err.Error(),
		}
	}
	return availabilityFromSDK(out), nil
}

// ListAgreementOffers returns the agreement offers for one model.
func (c *BedrockClient) ListAgreementOffers(ctx context.Context, modelID string) ([]AgreementOffer, error) {
	out, err := c.api.ListFoundationModelAgreementOffers(ctx, &bedrock.ListFoundationModelAgreementOffersInput{
		ModelId: aws.String(modelID),
	})
	if err != nil {
		return nil, &CatalogError{
			Type:    CatalogErrorOffersFailed,
			ModelID: modelID,
			Message: "failed to list agreement offers",
			Detail:  err.Error(),
		}
	}
	return offersFromSDK(out.Offers), nil
}

// CreateAgreement accepts an offer for a model.
func (c *BedrockClient) CreateAgreement(ctx context.Context, modelID, offerToken string) error {
	_, err := c.api.CreateFoundationModelAgreement(ctx, &bedrock.CreateFoundationModelAgreementInput{
		ModelId:    aws.String(modelID),
		OfferToken: aws.String(offerToken),
	})
	if err != nil {
		return &CatalogError{
			Type:        CatalogErrorAgreementFailed,
			ModelID:     modelID,
			Message:     "failed to create model agreement",
			Detail:      err.Error(),
			Remediation: "Some vendors require an active AWS Marketplace subscription; accept the model's terms once in the console if this persists",
		}
	}
	return nil
}

// GetRegion returns the region the catalog is bound to.
func (c *BedrockClient) GetRegion() string {
	return c.region
}

// -----------------------------------------------------------------------------
// Wire Shaping
// -----------------------------------------------------------------------------

// modelSummaryFromSDK converts an SDK model summary to the domain type.
func modelSummaryFromSDK(summary bedrocktypes.FoundationModelSummary) ModelSummary {
	inferenceTypes := make([]string, 0, len(summary.InferenceTypesSupported))
	for _, it := range summary.InferenceTypesSupported {
		inferenceTypes = append(inferenceTypes, string(it))
	}
	return ModelSummary{
		ModelID:                 aws.ToString(summary.ModelId),
		ModelName:               aws.ToString(summary.ModelName),
		ProviderName:            aws.ToString(summary.ProviderName),
		InferenceTypesSupported: inferenceTypes,
	}
}

// availabilityFromSDK converts an availability response to the domain type.
// A missing agreement block maps to AgreementStatusUnknown.
func availabilityFromSDK(out *bedrock.GetFoundationModelAvailabilityOutput) ModelAvailability {
	availability := ModelAvailability{
		AgreementStatus:     AgreementStatusUnknown,
		AuthorizationStatus: AgreementStatusUnknown,
	}
	if out == nil {
		return availability
	}
	if out.AgreementAvailability != nil && out.AgreementAvailability.Status != "" {
		availability.AgreementStatus = string(out.AgreementAvailability.Status)
	}
	if out.AuthorizationStatus != "" {
		availability.AuthorizationStatus = string(out.AuthorizationStatus)
	}
	return availability
}

// offersFromSDK converts SDK offers to domain offers, preserving order.
func offersFromSDK(offers []bedrocktypes.Offer) []AgreementOffer {
	result := make([]AgreementOffer, 0, len(offers))
	for _, offer := range offers {
		result = append(result, AgreementOffer{
			OfferID:    aws.ToString(offer.OfferId),
			OfferToken: aws.ToString(offer.OfferToken),
		})
	}
	return result
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

// CurrentConfigVersion marks the config schema version written on first run.
const CurrentConfigVersion = "1.0"

// DefaultRegion is used when neither the config file nor the
// environment specifies a Bedrock region.
const DefaultRegion = "us-east-1"

type BedrockctlConfig struct {
	// Meta: version stamp for forward-compatible migrations
	Meta MetaConfig `yaml:"meta"`

	// AWS: region and credential selection for Bedrock operations
	AWS AWSConfig `yaml:"aws"`

	// Activation: which inference modes mark a model as activatable
	Activation ActivationConfig `yaml:"activation"`

	// Logging: structured log destinations
	Logging LoggingConfig `yaml:"logging"`
}

type MetaConfig struct {
	Version string `yaml:"version"`
}

type AWSConfig struct {
	// Region is the AWS region for Bedrock operations, e.g. us-east-1.
	Region string `yaml:"region" validate:"required"`

	// Profile selects a shared-config credentials profile. Empty uses
	// the default credential chain.
	Profile string `yaml:"profile,omitempty"`
}

type ActivationConfig struct {
	// InferenceTypes lists the invocation modes a model must support
	// to be considered for activation.
	InferenceTypes []string `yaml:"inference_types" validate:"required,min=1,dive,oneof=ON_DEMAND INFERENCE_PROFILE PROVISIONED"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`

	// Dir enables file logging when set, e.g. ~/.bedrockctl/logs.
	Dir string `yaml:"dir,omitempty"`

	// S3Bucket enables the S3 audit exporter when set.
	S3Bucket string `yaml:"s3_bucket,omitempty"`

	// S3Prefix is the object key prefix for audit batches.
	S3Prefix string `yaml:"s3_prefix,omitempty"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() BedrockctlConfig {
	return BedrockctlConfig{
		Meta: MetaConfig{Version: CurrentConfigVersion},
		AWS: AWSConfig{
			Region: DefaultRegion,
		},
		Activation: ActivationConfig{
			InferenceTypes: []string{"ON_DEMAND", "INFERENCE_PROFILE"},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Dir:      "~/.bedrockctl/logs",
			S3Prefix: "activations/",
		},
	}
}

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

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestCreateDefault verifies default config creation.
func TestCreateDefault(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".bedrockctl", "bedrockctl.yaml")

	require.NoError(t, createDefault(configPath))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var cfg BedrockctlConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))

	assert.Equal(t, CurrentConfigVersion, cfg.Meta.Version)
	assert.Equal(t, DefaultRegion, cfg.AWS.Region)
	assert.Equal(t, []string{"ON_DEMAND", "INFERENCE_PROFILE"}, cfg.Activation.InferenceTypes)
	assert.Equal(t, "info", cfg.Logging.Level)
}

// TestCreateDefault_DirectoryCreation verifies nested directories are created.
func TestCreateDefault_DirectoryCreation(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "deep", "nested", "path", "bedrockctl.yaml")

	require.NoError(t, createDefault(configPath))

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

// TestLoadFrom verifies parsing and defaulting of a config file.
func TestLoadFrom(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bedrockctl.yaml")

	content := `
meta:
  version: "1.0"
aws:
  region: eu-west-1
  profile: ops
activation:
  inference_types: [ON_DEMAND]
logging:
  level: debug
  s3_bucket: audit-bucket
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := loadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "ops", cfg.AWS.Profile)
	assert.Equal(t, []string{"ON_DEMAND"}, cfg.Activation.InferenceTypes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "audit-bucket", cfg.Logging.S3Bucket)
}

// TestLoadFrom_MinimalFile verifies defaults fill a nearly empty file.
func TestLoadFrom_MinimalFile(t *testing.T) {
	t.Setenv("AWS_REGION", "")

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bedrockctl.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("meta:\n  version: \"1.0\"\n"), 0644))

	cfg, err := loadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultRegion, cfg.AWS.Region)
	assert.Equal(t, []string{"ON_DEMAND", "INFERENCE_PROFILE"}, cfg.Activation.InferenceTypes)
}

// TestLoadFrom_RegionFromEnv verifies AWS_REGION fills a missing region.
func TestLoadFrom_RegionFromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-southeast-2")

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bedrockctl.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("meta:\n  version: \"1.0\"\n"), 0644))

	cfg, err := loadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.AWS.Region)
}

// TestLoadFrom_InvalidInferenceType verifies validation rejects unknown modes.
func TestLoadFrom_InvalidInferenceType(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bedrockctl.yaml")

	content := `
aws:
  region: us-east-1
activation:
  inference_types: [BATCH]
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := loadFrom(configPath)
	assert.Error(t, err)
}

// TestLoadFrom_InvalidLogLevel verifies validation rejects unknown levels.
func TestLoadFrom_InvalidLogLevel(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bedrockctl.yaml")

	content := `
aws:
  region: us-east-1
logging:
  level: chatty
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := loadFrom(configPath)
	assert.Error(t, err)
}

// TestLoadFrom_MissingFile verifies a readable error for absent files.
func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// TestValidate_Defaults verifies the shipped defaults pass validation.
func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

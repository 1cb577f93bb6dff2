// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultS3BatchSize is the number of entries buffered before an upload.
const DefaultS3BatchSize = 100

// s3PutObjectAPI is the slice of the S3 client the exporter needs.
// Narrowed to one call so tests can substitute a fake.
type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter ships log entries to S3 as JSON Lines objects.
//
// bedrockctl uses this to keep an audit trail of activation runs:
// every agreement accepted on the operator's behalf ends up in a
// dated object under the configured prefix.
//
// Entries are buffered in memory and uploaded in batches. Object keys
// follow the layout:
//
//	{prefix}{yyyy}/{mm}/{dd}/bedrockctl-{run_id}-{timestamp}.jsonl
//
// Export never blocks on the network; uploads happen when a batch
// fills or on Flush during shutdown.
type S3Exporter struct {
	client    s3PutObjectAPI
	bucket    string
	prefix    string
	runID     string
	batchSize int

	mu     sync.Mutex
	buffer []LogEntry
}

// NewS3Exporter creates an exporter backed by a real S3 client for the
// given region. Credentials come from the default AWS chain.
func NewS3Exporter(ctx context.Context, bucket, region, prefix, runID string) (*S3Exporter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3ExporterWithClient(s3.NewFromConfig(cfg), bucket, prefix, runID), nil
}

// NewS3ExporterWithClient creates an exporter with an injected S3
// client. Used by tests to avoid real AWS calls.
func NewS3ExporterWithClient(client s3PutObjectAPI, bucket, prefix, runID string) *S3Exporter {
	return &S3Exporter{
		client:    client,
		bucket:    bucket,
		prefix:    prefix,
		runID:     runID,
		batchSize: DefaultS3BatchSize,
	}
}

// Export buffers the entry and uploads the batch if it is full.
func (e *S3Exporter) Export(ctx context.Context, entry LogEntry) error {
	e.mu.Lock()
	e.buffer = append(e.buffer, entry)
	full := len(e.buffer) >= e.batchSize
	var batch []LogEntry
	if full {
		batch = e.buffer
		e.buffer = nil
	}
	e.mu.Unlock()

	if full {
		return e.uploadBatch(ctx, batch)
	}
	return nil
}

// Flush uploads any buffered entries.
func (e *S3Exporter) Flush(ctx context.Context) error {
	e.mu.Lock()
	batch := e.buffer
	e.buffer = nil
	e.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	return e.uploadBatch(ctx, batch)
}

// Close releases resources. The S3 client holds no connections that
// need explicit shutdown, so this is a no-op.
func (e *S3Exporter) Close() error { return nil }

// uploadBatch writes one batch as a JSON Lines object.
func (e *S3Exporter) uploadBatch(ctx context.Context, batch []LogEntry) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for _, entry := range batch {
		record := map[string]any{
			"timestamp": entry.Timestamp.Format(time.RFC3339Nano),
			"level":     entry.Level.String(),
			"message":   entry.Message,
			"service":   entry.Service,
			"attrs":     entry.Attrs,
		}
		if err := encoder.Encode(record); err != nil {
			// Skip records that cannot be encoded rather than losing the batch
			continue
		}
	}

	key := e.objectKey(time.Now())
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload log batch to S3: %w", err)
	}
	return nil
}

// objectKey builds the dated object key for a batch.
func (e *S3Exporter) objectKey(now time.Time) string {
	return fmt.Sprintf("%s%04d/%02d/%02d/bedrockctl-%s-%s.jsonl",
		e.prefix,
		now.Year(),
		now.Month(),
		now.Day(),
		e.runID,
		now.Format("20060102-150405"),
	)
}

var _ LogExporter = (*S3Exporter)(nil)

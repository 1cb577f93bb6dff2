// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNew_DefaultConfig(t *testing.T) {
	logger := New(Config{})
	if logger == nil {
		t.Fatal("New returned nil")
	}
	if logger.slog == nil {
		t.Error("underlying slog.Logger not initialized")
	}
	if logger.file != nil {
		t.Error("file should be nil without LogDir")
	}
}

func TestNew_WithLogDir(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		LogDir:  dir,
		Service: "testsvc",
		Quiet:   true,
	})
	defer logger.Close()

	if logger.file == nil {
		t.Fatal("file handle not opened with LogDir set")
	}

	logger.Info("hello", "key", "value")

	wantName := "testsvc_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, wantName))
	if err != nil {
		t.Fatalf("expected log file %s: %v", wantName, err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message, got: %s", data)
	}
	if !strings.Contains(string(data), `"service":"testsvc"`) {
		t.Errorf("log file missing service attribute, got: %s", data)
	}
}

func TestNew_WithLogDir_NoService(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{LogDir: dir, Quiet: true})
	defer logger.Close()

	logger.Info("hi")

	// Default service name is used for the filename
	wantName := "bedrockctl_" + time.Now().Format("2006-01-02") + ".log"
	if _, err := os.Stat(filepath.Join(dir, wantName)); err != nil {
		t.Errorf("expected log file %s: %v", wantName, err)
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default returned nil")
	}
	if logger.config.Service != "bedrockctl" {
		t.Errorf("Default service = %q, want bedrockctl", logger.config.Service)
	}
	if logger.config.Level != LevelInfo {
		t.Errorf("Default level = %v, want LevelInfo", logger.config.Level)
	}
}

// =============================================================================
// Logging Behavior
// =============================================================================

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "filter",
		Quiet:   true,
	})
	defer logger.Close()

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	wantName := "filter_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, wantName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "debug message") || strings.Contains(content, "info message") {
		t.Error("messages below LevelWarn should be filtered")
	}
	if !strings.Contains(content, "warn message") || !strings.Contains(content, "error message") {
		t.Error("warn/error messages should be written")
	}
}

func TestLogger_With_SharesResources(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Exporter: exporter})

	child := logger.With("run_id", "abc")
	if child.exporter != logger.exporter {
		t.Error("child logger should share the exporter")
	}
	if child.file != logger.file {
		t.Error("child logger should share the file handle")
	}
}

func TestLogger_Export(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Service: "exp", Exporter: exporter})

	logger.Info("exported message", "model_id", "anthropic.claude-v2")

	// Export is async
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(exporter.Entries()) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	entries := exporter.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 exported entry, got %d", len(entries))
	}
	if entries[0].Message != "exported message" {
		t.Errorf("entry message = %q", entries[0].Message)
	}
	if entries[0].Service != "exp" {
		t.Errorf("entry service = %q", entries[0].Service)
	}
	if entries[0].Attrs["model_id"] != "anthropic.claude-v2" {
		t.Errorf("entry attrs = %v", entries[0].Attrs)
	}
}

func TestLogger_Close_WithFile(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{LogDir: dir, Service: "closer", Quiet: true})

	logger.Info("before close")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	logger := New(Config{Quiet: true})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Info("concurrent", "goroutine", n, "iter", j)
			}
		}(i)
	}
	wg.Wait()
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.bedrockctl/logs", filepath.Join(home, ".bedrockctl/logs")},
		{"/var/log", "/var/log"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArgsToMap(t *testing.T) {
	m := argsToMap([]any{"key1", "value1", "key2", 123})
	if m["key1"] != "value1" {
		t.Errorf("key1 = %v", m["key1"])
	}
	if m["key2"] != 123 {
		t.Errorf("key2 = %v", m["key2"])
	}

	// Odd-length args: trailing key without value is dropped
	m = argsToMap([]any{"key1", "value1", "dangling"})
	if len(m) != 1 {
		t.Errorf("expected 1 entry, got %d", len(m))
	}

	// Non-string keys are skipped
	m = argsToMap([]any{42, "value"})
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

// =============================================================================
// Exporter Tests
// =============================================================================

func TestNopExporter(t *testing.T) {
	e := &NopExporter{}
	ctx := context.Background()
	if err := e.Export(ctx, LogEntry{}); err != nil {
		t.Errorf("Export: %v", err)
	}
	if err := e.Flush(ctx); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestBufferedExporter_Entries_ReturnsCopy(t *testing.T) {
	e := NewBufferedExporter()
	_ = e.Export(context.Background(), LogEntry{Message: "one"})

	entries := e.Entries()
	entries[0].Message = "mutated"

	if e.Entries()[0].Message != "one" {
		t.Error("Entries() should return a copy")
	}
}

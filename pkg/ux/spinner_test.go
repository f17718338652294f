// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"errors"
	"testing"
)

// =============================================================================
// NewSpinner Tests
// =============================================================================

func TestNewSpinner_ReturnsNonNil(t *testing.T) {
	spin := NewSpinner("Loading...")
	if spin == nil {
		t.Fatal("NewSpinner returned nil")
	}
}

func TestNewSpinner_SetsMessage(t *testing.T) {
	spin := NewSpinner("Refreshing inventory")
	if spin.message != "Refreshing inventory" {
		t.Errorf("expected message 'Refreshing inventory', got %q", spin.message)
	}
}

func TestNewSpinner_DefaultsToDotsType(t *testing.T) {
	spin := NewSpinner("Loading...")
	if spin.spinType != SpinnerDots {
		t.Errorf("expected SpinnerDots, got %v", spin.spinType)
	}
}

func TestSpinner_WithType(t *testing.T) {
	spin := NewSpinner("Loading...").WithType(SpinnerPage)
	if spin.spinType != SpinnerPage {
		t.Errorf("expected SpinnerPage, got %v", spin.spinType)
	}
}

// =============================================================================
// Start/Stop Tests (Machine Mode)
// =============================================================================

func TestSpinner_Start_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	spin := NewSpinner("Refreshing...")
	output := captureStdout(func() {
		spin.Start()
	})

	if output != "PROGRESS: Refreshing...\n" {
		t.Errorf("expected 'PROGRESS: Refreshing...', got %q", output)
	}
}

func TestSpinner_Stop_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	spin := NewSpinner("Refreshing...")
	spin.Start()
	spin.Stop() // Should not panic or hang
}

func TestSpinner_Stop_WithoutStart(t *testing.T) {
	spin := NewSpinner("Never started")
	spin.Stop() // No-op
}

func TestSpinner_UpdateMessage(t *testing.T) {
	spin := NewSpinner("first")
	spin.UpdateMessage("second")
	if spin.message != "second" {
		t.Errorf("expected message 'second', got %q", spin.message)
	}
}

// =============================================================================
// WithSpinner Tests
// =============================================================================

func TestWithSpinner_Success(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)
	SetPersonalityLevel(PersonalityMachine)

	called := false
	err := WithSpinner("working", func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if !called {
		t.Error("function was not called")
	}
}

func TestWithSpinner_Error(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)
	SetPersonalityLevel(PersonalityMachine)

	wantErr := errors.New("boom")
	err := WithSpinner("working", func() error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected error to pass through, got %v", err)
	}
}

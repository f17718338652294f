// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	t.Setenv("LMS_SERVER_URL", "")

	var cfg Config
	cfg.applyDefaults()

	if cfg.Server.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q, want default", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.Server.TimeoutSeconds)
	}
	if cfg.Client.DeleteRefreshMode != DeleteRefreshAlways {
		t.Errorf("DeleteRefreshMode = %q, want %q", cfg.Client.DeleteRefreshMode, DeleteRefreshAlways)
	}
	if cfg.Client.RecommendationSeed == 0 {
		t.Error("RecommendationSeed should be seeded when unset")
	}
	if cfg.serverTimeout() != 10*time.Second {
		t.Errorf("serverTimeout = %v, want 10s", cfg.serverTimeout())
	}
}

func TestConfig_EnvOverridesBaseURL(t *testing.T) {
	t.Setenv("LMS_SERVER_URL", "http://catalog.test:9999")

	var cfg Config
	cfg.Server.BaseURL = "http://from-file:5000"
	cfg.applyDefaults()

	if cfg.Server.BaseURL != "http://catalog.test:9999" {
		t.Errorf("BaseURL = %q, want env override", cfg.Server.BaseURL)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{DeleteRefreshAlways, false},
		{DeleteRefreshOnSuccess, false},
		{"sometimes", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			var cfg Config
			cfg.Client.DeleteRefreshMode = tt.mode
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() with mode %q error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
		})
	}
}

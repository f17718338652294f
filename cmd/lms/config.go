// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"time"
)

// Delete refresh behavior. "always" re-fetches the inventory even when the
// server refused the delete, mirroring how the legacy web client behaved.
// "on_success" only refreshes after a confirmed delete.
const (
	DeleteRefreshAlways    = "always"
	DeleteRefreshOnSuccess = "on_success"
)

// Config is the client configuration loaded from config.yaml.
type Config struct {
	Server struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"server"`
	Client struct {
		DeleteRefreshMode  string `yaml:"delete_refresh_mode"`
		RecommendationSeed int64  `yaml:"recommendation_seed"`
	} `yaml:"client"`
	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
	} `yaml:"logging"`
	UX struct {
		Personality string `yaml:"personality"`
	} `yaml:"ux"`
}

// applyDefaults fills unset fields and applies environment overrides.
// LMS_SERVER_URL wins over the config file so a dev can point the client
// at another catalog without editing config.yaml.
func (c *Config) applyDefaults() {
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:5000"
	}
	if env := os.Getenv("LMS_SERVER_URL"); env != "" {
		c.Server.BaseURL = env
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = 10
	}
	if c.Client.DeleteRefreshMode == "" {
		c.Client.DeleteRefreshMode = DeleteRefreshAlways
	}
	if c.Client.RecommendationSeed == 0 {
		c.Client.RecommendationSeed = time.Now().UnixNano()
	}
}

// validate rejects values that would otherwise fail silently at use sites.
func (c *Config) validate() error {
	switch c.Client.DeleteRefreshMode {
	case DeleteRefreshAlways, DeleteRefreshOnSuccess:
	default:
		return fmt.Errorf("invalid client.delete_refresh_mode %q (want %q or %q)",
			c.Client.DeleteRefreshMode, DeleteRefreshAlways, DeleteRefreshOnSuccess)
	}
	return nil
}

// serverTimeout returns the configured request timeout.
func (c *Config) serverTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// lms is the interactive terminal client for the Central Library catalog.
package main

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/centralib/lms/pkg/logging"
)

var (
	config Config
	logger *logging.Logger
)

// loadConfig reads config.yaml from the working directory. A missing
// file is fine, the defaults point at a local catalog; a broken file is
// not.
func loadConfig() {
	data, err := os.ReadFile("config.yaml")
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			log.Fatalf("Failed to parse config.yaml: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("Failed to read config.yaml: %v", err)
	}
	config.applyDefaults()
	if err := config.validate(); err != nil {
		log.Fatalf("Invalid config.yaml: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

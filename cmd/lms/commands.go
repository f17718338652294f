// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centralib/lms/pkg/logging"
	"github.com/centralib/lms/pkg/ux"
)

const version = "1.1.0"

var personalityFlag string

var rootCmd = &cobra.Command{
	Use:   "lms",
	Short: "Terminal client for the Central Library catalog",
	Long: `lms signs you in to the Central Library catalog and gives you a
role-gated command shell: browse and search books, issue and return
loans, manage the inventory as an admin, and ask the assistant for
recommendations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadConfig()

		switch {
		case personalityFlag != "":
			ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityFlag))
		case config.UX.Personality != "":
			ux.SetPersonalityLevel(ux.ParsePersonalityLevel(config.UX.Personality))
		default:
			ux.InitPersonality()
		}

		logger = logging.New(logging.Config{
			Level:   logging.ParseLevel(config.Logging.Level),
			LogDir:  config.Logging.Dir,
			Service: "lms",
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		runSession(cmd.Context())
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the library assistant without signing in",
	Run: func(cmd *cobra.Command, args []string) {
		api := NewAPIClient(config.Server.BaseURL, config.serverTimeout(), logger)
		session := NewChatSession(api, logger)
		reader := NewInteractiveInputReader()
		if err := RunChatLoop(cmd.Context(), session, reader, "guest", "guest"); err != nil {
			ux.Error("chat ended: " + err.Error())
			os.Exit(1)
		}
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the catalog service is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		api := NewAPIClient(config.Server.BaseURL, config.serverTimeout(), logger)
		if err := api.Health(cmd.Context()); err != nil {
			ux.Error(err.Error())
			os.Exit(1)
		}
		ux.Success("catalog is up at " + config.Server.BaseURL)
	},
}

var booksCmd = &cobra.Command{
	Use:   "books [search] [all|available|issued]",
	Short: "List catalog books without signing in",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		api := NewAPIClient(config.Server.BaseURL, config.serverTimeout(), logger)
		cache := NewInventoryCache(api, logger)
		if err := cache.Refresh(cmd.Context()); err != nil {
			ux.Error("could not load catalog: " + err.Error())
			os.Exit(1)
		}
		search := ""
		status := StatusAll
		if len(args) > 0 {
			if len(args) == 1 && ParseStatusFilter(args[0]) != StatusAll {
				status = ParseStatusFilter(args[0])
			} else {
				search = args[0]
				if len(args) > 1 {
					status = ParseStatusFilter(args[1])
				}
			}
		}
		renderBooks(FilterBooks(cache.Books(), search, status))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lms %s\n", version)
	},
}

func runSession(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	api := NewAPIClient(config.Server.BaseURL, config.serverTimeout(), logger)
	shell := NewShell(&config, api, NewInteractiveInputReader(), logger)
	if err := shell.Run(ctx); err != nil {
		logger.Error("session ended with error", "error", err)
		ux.Error(err.Error())
		os.Exit(1)
	}
	logger.Info("session ended")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&personalityFlag, "personality", "",
		"output personality: full, minimal, or machine")
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(versionCmd)
}

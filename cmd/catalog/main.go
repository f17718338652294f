// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// The catalog binary runs the development catalog service: an in-memory
// implementation of the library REST contract, for running the terminal
// client end to end without the production backend.
package main

import (
	"bufio"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/centralib/lms/services/catalog/routes"
	"github.com/centralib/lms/services/catalog/store"
)

func main() {
	port := os.Getenv("CATALOG_PORT")
	if port == "" {
		port = "5000"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	titles := store.DefaultTitles
	if booksFile := os.Getenv("CATALOG_BOOKS_FILE"); booksFile != "" {
		loaded, err := readTitles(booksFile)
		if err != nil {
			log.Fatalf("failed to read books file %s: %v", booksFile, err)
		}
		titles = loaded
		slog.Info("Loaded catalog from file", "file", booksFile, "titles", len(titles))
	}

	s := store.New(titles)

	router := gin.Default()
	routes.SetupRoutes(router, s)

	slog.Info("Catalog service listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("catalog service exited: %v", err)
	}
}

// readTitles reads one book title per line, matching the legacy books.csv
// layout.
func readTitles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var titles []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		titles = append(titles, sc.Text())
	}
	return titles, sc.Err()
}

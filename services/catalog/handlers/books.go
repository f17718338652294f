// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers implements the catalog service's REST endpoints on top
// of the in-memory store.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetBooks returns the full catalog ordered by ID.
func GetBooks(s BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Books())
	}
}

// GetStats returns the summary counters.
func GetStats(s BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Stats())
	}
}

// GetHistory returns the parsed issue log, newest first.
func GetHistory(s BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.History())
	}
}

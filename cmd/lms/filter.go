// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"strings"

	"github.com/centralib/lms/services/catalog/datatypes"
)

// StatusFilter narrows the book list by loan state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "All"
	StatusAvailable StatusFilter = "Available"
	StatusIssued    StatusFilter = "Issued"
)

// ParseStatusFilter maps user input to a filter, defaulting to All.
func ParseStatusFilter(s string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return StatusAvailable
	case "issued":
		return StatusIssued
	default:
		return StatusAll
	}
}

// FilterBooks returns the books matching both the search term and the
// status filter. The search is a case-insensitive substring match against
// the title or the ID; an empty search matches everything. Input order is
// preserved and the input slice is never modified.
func FilterBooks(books []datatypes.Book, search string, status StatusFilter) []datatypes.Book {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]datatypes.Book, 0, len(books))
	for _, b := range books {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.ID), search) {
			continue
		}
		switch status {
		case StatusAvailable:
			if b.Issued() {
				continue
			}
		case StatusIssued:
			if !b.Issued() {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"math/rand"

	"github.com/centralib/lms/services/catalog/datatypes"
)

// Recommender picks up to k books from the available portion of the
// inventory for the profile page.
type Recommender struct {
	rng *rand.Rand
}

// NewRecommender creates a recommender. The same seed over the same
// inventory produces the same picks, which keeps the profile page stable
// across refreshes within a session.
func NewRecommender(seed int64) *Recommender {
	return &Recommender{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns up to k distinct available books. Issued books are never
// recommended.
func (r *Recommender) Pick(books []datatypes.Book, k int) []datatypes.Book {
	available := make([]datatypes.Book, 0, len(books))
	for _, b := range books {
		if !b.Issued() {
			available = append(available, b)
		}
	}
	if k > len(available) {
		k = len(available)
	}
	if k <= 0 {
		return nil
	}
	// Partial Fisher-Yates over a copy.
	picks := make([]datatypes.Book, len(available))
	copy(picks, available)
	for i := 0; i < k; i++ {
		j := i + r.rng.Intn(len(picks)-i)
		picks[i], picks[j] = picks[j], picks[i]
	}
	return picks[:k]
}

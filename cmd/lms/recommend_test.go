// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centralib/lms/services/catalog/datatypes"
)

func TestRecommender_Deterministic(t *testing.T) {
	books := testBooks()

	a := NewRecommender(42).Pick(books, 2)
	b := NewRecommender(42).Pick(books, 2)

	assert.Equal(t, a, b, "same seed over same inventory must pick the same books")
	assert.Len(t, a, 2)
}

func TestRecommender_NeverPicksIssuedBooks(t *testing.T) {
	books := testBooks()
	for seed := int64(0); seed < 20; seed++ {
		for _, pick := range NewRecommender(seed).Pick(books, 2) {
			assert.False(t, pick.Issued(), "seed %d recommended issued book %s", seed, pick.ID)
		}
	}
}

func TestRecommender_PicksAreDistinct(t *testing.T) {
	books := testBooks()
	for seed := int64(0); seed < 20; seed++ {
		picks := NewRecommender(seed).Pick(books, 2)
		if len(picks) == 2 {
			assert.NotEqual(t, picks[0].ID, picks[1].ID, "seed %d", seed)
		}
	}
}

func TestRecommender_KLargerThanAvailable(t *testing.T) {
	books := []datatypes.Book{
		{ID: "101", Title: "Jurassic Park", Status: datatypes.StatusAvailable},
	}
	picks := NewRecommender(1).Pick(books, 5)
	assert.Len(t, picks, 1)
}

func TestRecommender_EmptyInventory(t *testing.T) {
	assert.Nil(t, NewRecommender(1).Pick(nil, 2))

	allIssued := []datatypes.Book{
		{ID: "101", Title: "Jurassic Park", Status: datatypes.StatusIssued},
	}
	assert.Nil(t, NewRecommender(1).Pick(allIssued, 2))
}

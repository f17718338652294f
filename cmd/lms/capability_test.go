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

func TestTabsFor(t *testing.T) {
	tests := []struct {
		role string
		want []Tab
	}{
		{datatypes.RoleAdmin, []Tab{TabDashboard, TabBooks, TabHistory, TabChat}},
		{datatypes.RoleLibrarian, []Tab{TabDashboard, TabBooks, TabHistory, TabChat}},
		{datatypes.RoleStudent, []Tab{TabDashboard, TabBooks, TabProfile, TabChat}},
		{"", nil},
		{"janitor", nil},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, TabsFor(tt.role))
		})
	}
}

func TestHasTab(t *testing.T) {
	assert.True(t, HasTab(datatypes.RoleStudent, TabProfile))
	assert.False(t, HasTab(datatypes.RoleStudent, TabHistory))
	assert.True(t, HasTab(datatypes.RoleAdmin, TabHistory))
	assert.False(t, HasTab(datatypes.RoleAdmin, TabProfile))
	assert.False(t, HasTab("", TabBooks))
}

func TestCapabilityMatrix(t *testing.T) {
	tests := []struct {
		role         string
		issue, ret   bool
		del, add     bool
		editBorrower bool
	}{
		{datatypes.RoleAdmin, true, true, true, true, true},
		{datatypes.RoleLibrarian, true, true, false, false, true},
		{datatypes.RoleStudent, true, true, false, false, false},
		{"", false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.issue, CanIssue(tt.role), "CanIssue")
			assert.Equal(t, tt.ret, CanReturn(tt.role), "CanReturn")
			assert.Equal(t, tt.del, CanDelete(tt.role), "CanDelete")
			assert.Equal(t, tt.add, CanAddBook(tt.role), "CanAddBook")
			assert.Equal(t, tt.editBorrower, CanEditBorrower(tt.role), "CanEditBorrower")
		})
	}
}

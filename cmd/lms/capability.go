// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import "github.com/centralib/lms/services/catalog/datatypes"

// Tab is a top-level section of the client. Which tabs a user sees is a
// pure function of their role; the server still enforces its own gates,
// these checks only shape the UI.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabBooks     Tab = "books"
	TabProfile   Tab = "profile"
	TabHistory   Tab = "history"
	TabChat      Tab = "chat"
)

// TabsFor returns the sections visible to role, in display order.
// An unknown or empty role sees nothing.
func TabsFor(role string) []Tab {
	switch role {
	case datatypes.RoleAdmin, datatypes.RoleLibrarian:
		return []Tab{TabDashboard, TabBooks, TabHistory, TabChat}
	case datatypes.RoleStudent:
		return []Tab{TabDashboard, TabBooks, TabProfile, TabChat}
	default:
		return nil
	}
}

// HasTab reports whether role may open tab.
func HasTab(role string, tab Tab) bool {
	for _, t := range TabsFor(role) {
		if t == tab {
			return true
		}
	}
	return false
}

// CanIssue reports whether role may open the issue workflow.
func CanIssue(role string) bool {
	switch role {
	case datatypes.RoleAdmin, datatypes.RoleLibrarian, datatypes.RoleStudent:
		return true
	}
	return false
}

// CanReturn reports whether role may return a book.
func CanReturn(role string) bool {
	return CanIssue(role)
}

// CanDelete reports whether role may remove books from the catalog.
func CanDelete(role string) bool {
	return role == datatypes.RoleAdmin
}

// CanAddBook reports whether role may add books to the catalog.
func CanAddBook(role string) bool {
	return role == datatypes.RoleAdmin
}

// CanEditBorrower reports whether role may issue a book to someone other
// than themselves. Students always borrow under their own name.
func CanEditBorrower(role string) bool {
	return role == datatypes.RoleAdmin || role == datatypes.RoleLibrarian
}

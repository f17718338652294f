// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import "github.com/centralib/lms/services/catalog/datatypes"

// BookStore is the catalog state the handlers operate on. *store.Store
// satisfies it; tests substitute lighter fakes.
type BookStore interface {
	Books() []datatypes.Book
	Stats() datatypes.Stats
	Issue(bookID, name string) (datatypes.Book, error)
	Return(bookID string) (datatypes.Book, error)
	Add(title string) (datatypes.Book, error)
	Delete(bookID, confirm string) error
	History() []datatypes.HistoryEntry
	SearchTitles(query string) []string
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store holds the in-memory book catalog backing the catalog
// service. It reproduces the legacy backend's behavior: numeric string IDs
// starting at 101, the "Already Issued" status string, and a plain-text
// issue log that the history endpoint parses back into structured entries.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/centralib/lms/services/catalog/datatypes"
)

// Sentinel errors returned by the mutating operations. Handlers map these
// onto HTTP status codes and the wire-level rejection messages.
var (
	ErrNotFound      = errors.New("invalid book id")
	ErrAlreadyIssued = errors.New("book already issued")
	ErrBookOnLoan    = errors.New("cannot delete issued book")
	ErrNotConfirmed  = errors.New("delete not confirmed")
	ErrEmptyTitle    = errors.New("empty title not allowed")
)

// MockMemberCount is served in stats; member tracking never made it into
// the backend, so the counter is a fixed placeholder.
const MockMemberCount = 150

const firstBookID = 101

var logLinePattern = regexp.MustCompile(`^(.*?) (issued|returned) '(.*?)' on (.*)$`)

// Store is a mutex-guarded book catalog. All methods are safe for
// concurrent use.
type Store struct {
	mu    sync.Mutex
	books map[string]*datatypes.Book
	log   []string

	// now is swapped out in tests for deterministic timestamps.
	now func() time.Time
}

// New builds a store seeded with one Available book per title, assigning
// IDs sequentially from 101.
func New(titles []string) *Store {
	s := &Store{
		books: make(map[string]*datatypes.Book, len(titles)),
		now:   time.Now,
	}
	id := firstBookID
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		key := strconv.Itoa(id)
		s.books[key] = &datatypes.Book{
			ID:     key,
			Title:  title,
			Status: datatypes.StatusAvailable,
		}
		id++
	}
	return s
}

// Books returns a snapshot of the catalog ordered by numeric ID.
func (s *Store) Books() []datatypes.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]datatypes.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out
}

// Stats computes the summary counters over the current catalog.
func (s *Store) Stats() datatypes.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	issued := 0
	for _, b := range s.books {
		if b.Issued() {
			issued++
		}
	}
	total := len(s.books)
	return datatypes.Stats{
		TotalBooks:     total,
		IssuedBooks:    issued,
		AvailableBooks: total - issued,
		Members:        MockMemberCount,
	}
}

// Issue marks a book as loaned out to name, stamping the issue date and
// appending to the issue log. Fails if the ID is unknown or the book is
// already out.
func (s *Store) Issue(bookID, name string) (datatypes.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return datatypes.Book{}, ErrNotFound
	}
	if b.Issued() {
		return datatypes.Book{}, ErrAlreadyIssued
	}
	date := s.now().Format(datatypes.IssueDateLayout)
	b.LenderName = name
	b.IssueDate = date
	b.Status = datatypes.StatusIssued
	s.log = append(s.log, fmt.Sprintf("%s issued '%s' on %s", name, b.Title, date))
	return *b, nil
}

// Return clears the loan fields on a known book. Like the legacy backend
// it does not care whether the book was actually out; a return of an
// available book is a silent no-op that still reports success.
func (s *Store) Return(bookID string) (datatypes.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return datatypes.Book{}, ErrNotFound
	}
	if b.Issued() && b.LenderName != "" {
		s.log = append(s.log, fmt.Sprintf("%s returned '%s' on %s",
			b.LenderName, b.Title, s.now().Format(datatypes.IssueDateLayout)))
	}
	b.LenderName = ""
	b.IssueDate = ""
	b.Status = datatypes.StatusAvailable
	return *b, nil
}

// Add appends a new Available book, assigning max(ID)+1.
func (s *Store) Add(title string) (datatypes.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return datatypes.Book{}, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := firstBookID - 1
	for key := range s.books {
		if n, err := strconv.Atoi(key); err == nil && n > maxID {
			maxID = n
		}
	}
	key := strconv.Itoa(maxID + 1)
	b := &datatypes.Book{
		ID:     key,
		Title:  title,
		Status: datatypes.StatusAvailable,
	}
	s.books[key] = b
	return *b, nil
}

// Delete removes an available book. Issued books are refused, and the
// caller must pass confirm "y" exactly.
func (s *Store) Delete(bookID, confirm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return ErrNotFound
	}
	if b.Issued() {
		return ErrBookOnLoan
	}
	if strings.ToLower(confirm) != "y" {
		return ErrNotConfirmed
	}
	delete(s.books, bookID)
	return nil
}

// History parses the issue log back into structured entries, newest first.
// Lines that don't match the expected shape are skipped.
func (s *Store) History() []datatypes.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]datatypes.HistoryEntry, 0, len(s.log))
	for i := len(s.log) - 1; i >= 0; i-- {
		m := logLinePattern.FindStringSubmatch(s.log[i])
		if m == nil {
			continue
		}
		out = append(out, datatypes.HistoryEntry{
			User:   m[1],
			Action: m[2],
			Book:   m[3],
			Date:   m[4],
		})
	}
	return out
}

// SearchTitles returns "Title (ID: nnn)" strings for every book whose
// title contains query, case-insensitively. Used by the chat endpoint.
func (s *Store) SearchTitles(query string) []string {
	query = strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var found []string
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title), query) {
			found = append(found, fmt.Sprintf("%s (ID: %s)", b.Title, b.ID))
		}
	}
	sort.Strings(found)
	return found
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"sync"

	"github.com/centralib/lms/services/catalog/datatypes"
)

// IssuanceState tracks where the issue workflow is.
type IssuanceState int

const (
	IssuanceIdle IssuanceState = iota
	IssuanceDraftOpen
	IssuanceSubmitting
)

func (s IssuanceState) String() string {
	switch s {
	case IssuanceIdle:
		return "idle"
	case IssuanceDraftOpen:
		return "draft"
	case IssuanceSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// IssuanceDraft is the pending issue form.
type IssuanceDraft struct {
	BookID    string
	BookTitle string
	Borrower  string
}

var (
	ErrNoDraft          = errors.New("no issue draft open")
	ErrBorrowerReadOnly = errors.New("borrower cannot be changed for this role")
)

type issueAPI interface {
	Issue(ctx context.Context, bookID, userName string) error
}

// IssuanceController drives the issue workflow: Idle, then a draft opens
// seeded with the acting user's name, then a submit either lands (back to
// Idle, inventory refreshed) or is refused (back to the draft with the
// reason attached and the form intact).
type IssuanceController struct {
	mu      sync.Mutex
	state   IssuanceState
	draft   IssuanceDraft
	reason  string
	canEdit bool

	api     issueAPI
	refresh func(ctx context.Context) error
}

// NewIssuanceController wires the workflow to the catalog client and the
// inventory refresh that follows a successful issue.
func NewIssuanceController(api issueAPI, refresh func(ctx context.Context) error) *IssuanceController {
	return &IssuanceController{api: api, refresh: refresh}
}

// Open starts a draft for book on behalf of user. The borrower field is
// always seeded from the acting user, overwriting whatever a previous
// draft left behind. Whether the borrower can be edited afterwards
// depends on the user's role.
func (c *IssuanceController) Open(book datatypes.Book, user datatypes.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = IssuanceDraftOpen
	c.draft = IssuanceDraft{
		BookID:    book.ID,
		BookTitle: book.Title,
		Borrower:  user.Name,
	}
	c.reason = ""
	c.canEdit = CanEditBorrower(user.Role)
}

// SetBorrower changes the borrower on the open draft. Students cannot
// redirect a loan to someone else.
func (c *IssuanceController) SetBorrower(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != IssuanceDraftOpen {
		return ErrNoDraft
	}
	if !c.canEdit {
		return ErrBorrowerReadOnly
	}
	c.draft.Borrower = name
	return nil
}

// Cancel abandons the draft and returns to idle.
func (c *IssuanceController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = IssuanceIdle
	c.draft = IssuanceDraft{}
	c.reason = ""
}

// Confirm submits the draft. With an empty borrower it is a no-op and the
// draft stays open. On success the controller returns to idle and the
// inventory is refreshed; on refusal the draft survives untouched with
// the server's reason recorded so the user can correct and resubmit.
func (c *IssuanceController) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.state != IssuanceDraftOpen {
		c.mu.Unlock()
		return ErrNoDraft
	}
	if c.draft.Borrower == "" {
		c.mu.Unlock()
		return nil
	}
	draft := c.draft
	c.state = IssuanceSubmitting
	c.mu.Unlock()

	err := c.api.Issue(ctx, draft.BookID, draft.Borrower)

	c.mu.Lock()
	if err != nil {
		c.state = IssuanceDraftOpen
		c.reason = err.Error()
		if rej, ok := AsRejection(err); ok {
			c.reason = rej.Message
		}
		c.mu.Unlock()
		return err
	}
	c.state = IssuanceIdle
	c.draft = IssuanceDraft{}
	c.reason = ""
	c.mu.Unlock()

	if c.refresh != nil {
		return c.refresh(ctx)
	}
	return nil
}

// State returns the current workflow state.
func (c *IssuanceController) State() IssuanceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the open draft.
func (c *IssuanceController) Draft() IssuanceDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Reason returns the last refusal message, if any.
func (c *IssuanceController) Reason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

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
	"strings"

	"github.com/centralib/lms/pkg/logging"
)

var (
	ErrNotPermitted = errors.New("operation not permitted for this role")
	ErrEmptyTitle   = errors.New("title must not be empty")
)

type actionAPI interface {
	Return(ctx context.Context, bookID string) error
	Add(ctx context.Context, title string) error
	Delete(ctx context.Context, bookID, role string) error
}

// ActionRunner executes the single-step catalog actions (return, add,
// delete) and reconciles the inventory cache afterwards. Unlike the issue
// workflow there is no draft: each action submits immediately.
type ActionRunner struct {
	api               actionAPI
	refresh           func(ctx context.Context) error
	deleteRefreshMode string
	logger            *logging.Logger
}

// NewActionRunner wires the runner. deleteRefreshMode is one of
// DeleteRefreshAlways or DeleteRefreshOnSuccess.
func NewActionRunner(api actionAPI, refresh func(ctx context.Context) error, deleteRefreshMode string, logger *logging.Logger) *ActionRunner {
	if logger == nil {
		logger = logging.Default()
	}
	return &ActionRunner{
		api:               api,
		refresh:           refresh,
		deleteRefreshMode: deleteRefreshMode,
		logger:            logger,
	}
}

// ReturnBook returns bookID to the shelf and refreshes on success.
func (r *ActionRunner) ReturnBook(ctx context.Context, bookID string) error {
	if err := r.api.Return(ctx, bookID); err != nil {
		return err
	}
	r.logger.Info("book returned", "book_id", bookID)
	return r.doRefresh(ctx)
}

// AddBook adds a new title and refreshes on success. Blank titles are
// refused client-side so the catalog never sees them.
func (r *ActionRunner) AddBook(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if err := r.api.Add(ctx, strings.TrimSpace(title)); err != nil {
		return err
	}
	r.logger.Info("book added", "title", title)
	return r.doRefresh(ctx)
}

// DeleteBook removes bookID. The role gate runs client-side first so
// non-admins never reach the server, and the role still travels with the
// request for the server's own check. Whether a refused delete refreshes
// the inventory depends on the configured mode.
func (r *ActionRunner) DeleteBook(ctx context.Context, bookID, role string) error {
	if !CanDelete(role) {
		return ErrNotPermitted
	}

	err := r.api.Delete(ctx, bookID, role)
	if err != nil {
		if _, rejected := AsRejection(err); rejected && r.deleteRefreshMode == DeleteRefreshAlways {
			// The legacy client re-fetched even after a refusal so the
			// view never drifted from the server.
			if refreshErr := r.doRefresh(ctx); refreshErr != nil {
				r.logger.Warn("refresh after refused delete failed", "error", refreshErr)
			}
		}
		return err
	}
	r.logger.Info("book deleted", "book_id", bookID)
	return r.doRefresh(ctx)
}

func (r *ActionRunner) doRefresh(ctx context.Context) error {
	if r.refresh == nil {
		return nil
	}
	return r.refresh(ctx)
}

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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralib/lms/services/catalog/datatypes"
)

type fakeActionAPI struct {
	returnErr error
	addErr    error
	deleteErr error

	deleteRoles []string
}

func (f *fakeActionAPI) Return(ctx context.Context, bookID string) error { return f.returnErr }
func (f *fakeActionAPI) Add(ctx context.Context, title string) error     { return f.addErr }
func (f *fakeActionAPI) Delete(ctx context.Context, bookID, role string) error {
	f.deleteRoles = append(f.deleteRoles, role)
	return f.deleteErr
}

func countingRefresh(n *int) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		*n++
		return nil
	}
}

func TestActionRunner_ReturnRefreshesOnSuccess(t *testing.T) {
	refreshed := 0
	r := NewActionRunner(&fakeActionAPI{}, countingRefresh(&refreshed), DeleteRefreshAlways, nil)

	require.NoError(t, r.ReturnBook(context.Background(), "101"))
	assert.Equal(t, 1, refreshed)
}

func TestActionRunner_ReturnFailureSkipsRefresh(t *testing.T) {
	refreshed := 0
	api := &fakeActionAPI{returnErr: &Rejection{Op: "return", Message: "Invalid Book ID", Status: http.StatusNotFound}}
	r := NewActionRunner(api, countingRefresh(&refreshed), DeleteRefreshAlways, nil)

	err := r.ReturnBook(context.Background(), "999")
	require.Error(t, err)
	assert.Equal(t, 0, refreshed)
}

func TestActionRunner_AddRejectsBlankTitle(t *testing.T) {
	refreshed := 0
	r := NewActionRunner(&fakeActionAPI{}, countingRefresh(&refreshed), DeleteRefreshAlways, nil)

	assert.ErrorIs(t, r.AddBook(context.Background(), "   "), ErrEmptyTitle)
	assert.Equal(t, 0, refreshed)
}

func TestActionRunner_AddRefreshesOnSuccess(t *testing.T) {
	refreshed := 0
	r := NewActionRunner(&fakeActionAPI{}, countingRefresh(&refreshed), DeleteRefreshAlways, nil)

	require.NoError(t, r.AddBook(context.Background(), "Dune"))
	assert.Equal(t, 1, refreshed)
}

func TestActionRunner_DeleteGatesNonAdminsClientSide(t *testing.T) {
	api := &fakeActionAPI{}
	r := NewActionRunner(api, nil, DeleteRefreshAlways, nil)

	err := r.DeleteBook(context.Background(), "101", datatypes.RoleLibrarian)
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Empty(t, api.deleteRoles, "the request must never reach the server")
}

func TestActionRunner_DeleteSendsRoleToServer(t *testing.T) {
	api := &fakeActionAPI{}
	refreshed := 0
	r := NewActionRunner(api, countingRefresh(&refreshed), DeleteRefreshAlways, nil)

	require.NoError(t, r.DeleteBook(context.Background(), "101", datatypes.RoleAdmin))
	assert.Equal(t, []string{datatypes.RoleAdmin}, api.deleteRoles)
	assert.Equal(t, 1, refreshed)
}

func TestActionRunner_RefusedDeleteRefreshesInAlwaysMode(t *testing.T) {
	api := &fakeActionAPI{deleteErr: &Rejection{Op: "delete", Message: "Delete Failed", Status: http.StatusOK}}
	refreshed := 0
	r := NewActionRunner(api, countingRefresh(&refreshed), DeleteRefreshAlways, nil)

	err := r.DeleteBook(context.Background(), "101", datatypes.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, 1, refreshed, "always mode refreshes even after a refusal")
}

func TestActionRunner_RefusedDeleteSkipsRefreshInOnSuccessMode(t *testing.T) {
	api := &fakeActionAPI{deleteErr: &Rejection{Op: "delete", Message: "Delete Failed", Status: http.StatusOK}}
	refreshed := 0
	r := NewActionRunner(api, countingRefresh(&refreshed), DeleteRefreshOnSuccess, nil)

	err := r.DeleteBook(context.Background(), "101", datatypes.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, 0, refreshed)
}

func TestActionRunner_TransportErrorOnDeleteNeverRefreshes(t *testing.T) {
	// A transport failure means the server state is unknown; re-fetching
	// is pointless if the server is unreachable.
	api := &fakeActionAPI{deleteErr: errors.New("connection refused")}
	refreshed := 0
	r := NewActionRunner(api, countingRefresh(&refreshed), DeleteRefreshAlways, nil)

	err := r.DeleteBook(context.Background(), "101", datatypes.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, 0, refreshed)
}

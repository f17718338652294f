// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralib/lms/services/catalog/datatypes"
)

func newTestClient(t *testing.T, handler http.Handler) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL, 2*time.Second, nil)
}

func TestAPIClient_Books(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"101","books_title":"Jurassic Park","lender_name":"","Issue_date":"","Status":"Available"}]`))
	}))

	books, err := client.Books(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "101", books[0].ID)
	assert.Equal(t, "Jurassic Park", books[0].Title)
}

func TestAPIClient_Issue_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/issue", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Book Issued"}`))
	}))

	err := client.Issue(context.Background(), "101", "Jane")
	assert.NoError(t, err)
}

func TestAPIClient_Issue_RejectionCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"Book Already Issued"}`))
	}))

	err := client.Issue(context.Background(), "101", "Jane")
	require.Error(t, err)

	rej, ok := AsRejection(err)
	require.True(t, ok, "expected a Rejection, got %T", err)
	assert.Equal(t, "issue", rej.Op)
	assert.Equal(t, "Book Already Issued", rej.Message)
	assert.Equal(t, http.StatusConflict, rej.Status)
}

func TestAPIClient_TransportErrorIsNotRejection(t *testing.T) {
	client := NewAPIClient("http://127.0.0.1:1", 500*time.Millisecond, nil)

	err := client.Issue(context.Background(), "101", "Jane")
	require.Error(t, err)

	_, ok := AsRejection(err)
	assert.False(t, ok, "transport failure must not be a Rejection")
}

func TestAPIClient_Delete_SendsRoleHeader(t *testing.T) {
	var gotRole string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.Header.Get("role")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Book Deleted"}`))
	}))

	err := client.Delete(context.Background(), "101", datatypes.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, datatypes.RoleAdmin, gotRole)
}

func TestAPIClient_Delete_FailureEnvelopeIsRejection(t *testing.T) {
	// The catalog reports some delete failures inside a 200 envelope.
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"Delete Failed","logs":"Cannot delete issued book!"}`))
	}))

	err := client.Delete(context.Background(), "101", datatypes.RoleAdmin)
	require.Error(t, err)

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "Delete Failed", rej.Message)
	assert.Equal(t, http.StatusOK, rej.Status)
}

func TestAPIClient_Login(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"user":{"name":"Administrator","role":"admin","id":"ADMIN-001"}}`))
	}))

	user, err := client.Login(context.Background(), datatypes.LoginRequest{Role: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "Administrator", user.Name)
	assert.Equal(t, "ADMIN-001", user.ID)
}

func TestAPIClient_Login_BadCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid admin password"}`))
	}))

	_, err := client.Login(context.Background(), datatypes.LoginRequest{Role: "admin", Password: "nope"})
	require.Error(t, err)

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid admin password", rej.Message)
}

func TestAPIClient_Chat(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"Try Jurassic Park (ID: 101)."}`))
	}))

	reply, err := client.Chat(context.Background(), "dinosaurs")
	require.NoError(t, err)
	assert.Equal(t, "Try Jurassic Park (ID: 101).", reply)
}

func TestAPIClient_Health(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	assert.NoError(t, client.Health(context.Background()))
}

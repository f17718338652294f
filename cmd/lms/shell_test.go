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
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centralib/lms/services/catalog/datatypes"
	"github.com/centralib/lms/services/catalog/routes"
	"github.com/centralib/lms/services/catalog/store"
)

// newCatalogServer runs the real catalog service in-process so shell
// sessions exercise the actual wire format.
func newCatalogServer(t *testing.T, titles []string) *APIClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router, store.New(titles))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return NewAPIClient(server.URL, 2*time.Second, nil)
}

func testShell(t *testing.T, inputs []string) (*Shell, *APIClient) {
	t.Helper()
	api := newCatalogServer(t, []string{"Jurassic Park", "Animal Farm", "Dune"})
	var cfg Config
	cfg.applyDefaults()
	cfg.Client.RecommendationSeed = 7
	shell := NewShell(&cfg, api, NewMockInputReader(inputs), nil)
	return shell, api
}

func TestShell_AdminIssueAndReturnFlow(t *testing.T) {
	shell, api := testShell(t, []string{
		"admin", "admin123",
		"issue 101",
		"borrower Jane Doe",
		"confirm",
		"return 101", "y",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	books, err := api.Books(context.Background())
	require.NoError(t, err)
	for _, b := range books {
		assert.False(t, b.Issued(), "book %s should be back on the shelf", b.ID)
	}

	history, err := api.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2, "issue then return should both be logged")
	assert.Equal(t, "returned", history[0].Action, "newest entry first")
	assert.Equal(t, "issued", history[1].Action)
	assert.Equal(t, "Jane Doe", history[1].User)
}

func TestShell_StudentCannotRedirectLoan(t *testing.T) {
	shell, api := testShell(t, []string{
		"student", "jane.doe@example.com", "9876543210",
		"issue 101",
		"borrower Somebody Else",
		"confirm",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	books, err := api.Books(context.Background())
	require.NoError(t, err)
	require.Equal(t, "101", books[0].ID)
	assert.True(t, books[0].Issued())
	assert.Equal(t, "Jane.Doe", books[0].LenderName, "loan must stay under the student's own name")
}

func TestShell_LibrarianCannotDelete(t *testing.T) {
	shell, api := testShell(t, []string{
		"librarian", "lib123",
		"delete 101",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	books, err := api.Books(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 3, "the delete must never reach the catalog")
}

func TestShell_AdminAddAndDelete(t *testing.T) {
	shell, api := testShell(t, []string{
		"admin", "admin123",
		"add The Hobbit",
		"delete 101", "y",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	books, err := api.Books(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)

	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = b.Title
	}
	assert.Contains(t, titles, "The Hobbit")
	assert.NotContains(t, titles, "Jurassic Park")
}

func TestShell_BadCredentialsRetriesLogin(t *testing.T) {
	shell, _ := testShell(t, []string{
		"admin", "wrong",
		"admin", "admin123",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	_, ok := shell.sessions.Current()
	assert.False(t, ok, "session should be cleared after exit")
}

func TestShell_LogoutReturnsToLogin(t *testing.T) {
	shell, api := testShell(t, []string{
		"admin", "admin123",
		"logout",
		"librarian", "lib123",
		"issue 102",
		"confirm",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	book, err := api.Books(context.Background())
	require.NoError(t, err)
	require.Len(t, book, 3)
	assert.Equal(t, "Librarian", book[1].LenderName)
	assert.Equal(t, datatypes.StatusIssued, book[1].Status)
}

func TestShell_DeclinedDeleteKeepsBook(t *testing.T) {
	shell, api := testShell(t, []string{
		"admin", "admin123",
		"delete 101", "n",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	books, err := api.Books(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 3, "a declined delete must never reach the catalog")
}

func TestShell_DeclinedReturnKeepsLoan(t *testing.T) {
	shell, api := testShell(t, []string{
		"admin", "admin123",
		"issue 101",
		"confirm",
		"return 101", "no thanks",
		"exit",
	})

	require.NoError(t, shell.Run(context.Background()))

	books, err := api.Books(context.Background())
	require.NoError(t, err)
	require.Equal(t, "101", books[0].ID)
	assert.True(t, books[0].Issued(), "a declined return must leave the loan in place")
}

func TestShell_IssueSucceedsWhenRefreshFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := store.New([]string{"Jurassic Park"})
	router := gin.New()
	routes.SetupRoutes(router, st)

	// Once the issue lands, the read endpoints go dark so the follow-up
	// refresh inside the workflow fails.
	var failReads atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failReads.Load() && r.Method == http.MethodGet {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path == "/api/issue" {
			failReads.Store(true)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	var cfg Config
	cfg.applyDefaults()
	shell := NewShell(&cfg, NewAPIClient(server.URL, 2*time.Second, nil),
		NewMockInputReader([]string{
			"admin", "admin123",
			"issue 101",
			"confirm",
			"exit",
		}), nil)

	require.NoError(t, shell.Run(context.Background()))

	books := st.Books()
	require.Len(t, books, 1)
	assert.True(t, books[0].Issued(), "the issue itself must land despite the failed refresh")
	assert.Equal(t, IssuanceIdle, shell.issuance.State(), "workflow must not reopen the draft")
}

func TestShell_EOFDuringLoginExitsCleanly(t *testing.T) {
	shell, _ := testShell(t, []string{"admin"})
	assert.NoError(t, shell.Run(context.Background()))
}

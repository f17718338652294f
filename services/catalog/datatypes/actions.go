// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// IssueRequest is the payload for POST /api/issue.
type IssueRequest struct {
	BookID   string `json:"book_id"`
	UserName string `json:"user_name"`
}

// ReturnRequest is the payload for POST /api/return.
type ReturnRequest struct {
	BookID string `json:"book_id"`
}

// AddRequest is the payload for POST /api/add.
type AddRequest struct {
	Title string `json:"title"`
}

// DeleteRequest is the payload for POST /api/delete. Confirm must be "y"
// for the delete to go through; the caller must also present an admin
// role header.
type DeleteRequest struct {
	BookID  string `json:"book_id"`
	Confirm string `json:"confirm"`
}

// ActionResponse is the common result shape for the mutating endpoints.
// Success false carries a human-readable Message; Logs echoes the raw
// backend output for troubleshooting.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Logs    string `json:"logs,omitempty"`
}

// HistoryEntry is one parsed line of the issue log, served newest-first
// by GET /api/history.
type HistoryEntry struct {
	User   string `json:"user"`
	Action string `json:"action"`
	Book   string `json:"book"`
	Date   string `json:"date"`
}

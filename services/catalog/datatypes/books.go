// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides the wire types shared by the catalog service
// and the terminal client.
//
// Field names and JSON keys follow the legacy record layout (including the
// inconsistent casing of Issue_date and Status) so that both sides stay
// compatible with existing data files.
package datatypes

// Book status values as they appear on the wire. Anything other than
// StatusAvailable is treated as issued by consumers.
const (
	StatusAvailable = "Available"
	StatusIssued    = "Already Issued"
)

// IssueDateLayout is the timestamp format stamped on issued books and
// written to the issue log.
const IssueDateLayout = "2006-01-02 15:04:05"

// Book is a single catalog record.
type Book struct {
	ID         string `json:"id"`
	Title      string `json:"books_title"`
	LenderName string `json:"lender_name"`
	IssueDate  string `json:"Issue_date"`
	Status     string `json:"Status"`
}

// Issued reports whether the book is out on loan. The legacy backend only
// ever writes "Available" or "Already Issued", but any unknown status is
// treated as issued rather than lendable.
func (b Book) Issued() bool {
	return b.Status != StatusAvailable
}

// Stats is the summary counter block served by GET /api/stats.
type Stats struct {
	TotalBooks     int `json:"total_books"`
	IssuedBooks    int `json:"issued_books"`
	AvailableBooks int `json:"available_books"`
	Members        int `json:"members"`
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/centralib/lms/pkg/ux"
	"github.com/centralib/lms/services/catalog/datatypes"
)

func renderDashboard(user datatypes.User, stats datatypes.Stats) {
	ux.Box("Dashboard", fmt.Sprintf(
		"signed in as %s (%s)\nmembers: %d",
		user.Name, user.Role, stats.Members))
	ux.CountSummary(stats.AvailableBooks, stats.IssuedBooks, stats.TotalBooks)
}

func renderBooks(books []datatypes.Book) {
	if len(books) == 0 {
		ux.Info("no books match")
		return
	}
	available, issued := 0, 0
	for _, b := range books {
		label := fmt.Sprintf("%s  %s", b.ID, b.Title)
		if b.Issued() {
			issued++
			reason := b.Status
			if b.LenderName != "" {
				reason = fmt.Sprintf("%s to %s", b.Status, b.LenderName)
			}
			ux.StatusLine(label, ux.IconPending, reason)
		} else {
			available++
			ux.StatusLine(label, ux.IconSuccess, b.Status)
		}
	}
	ux.CountSummary(available, issued, len(books))
}

func renderHistory(entries []datatypes.HistoryEntry) {
	if len(entries) == 0 {
		ux.Info("no transactions yet")
		return
	}
	for _, e := range entries {
		icon := ux.IconArrow
		if e.Action == "returned" {
			icon = ux.IconSuccess
		}
		ux.StatusLine(fmt.Sprintf("%s %s '%s'", e.User, e.Action, e.Book), icon, e.Date)
	}
}

func renderProfile(user datatypes.User, loans, recommendations []datatypes.Book) {
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\nid: %s\nrole: %s", user.Name, user.ID, user.Role)
	if user.Email != "" {
		fmt.Fprintf(&b, "\nemail: %s", user.Email)
	}
	ux.Box("Profile", b.String())

	if len(loans) > 0 {
		ux.Info("books on loan:")
		for _, book := range loans {
			ux.StatusLine(fmt.Sprintf("%s  %s", book.ID, book.Title), ux.IconPending, book.IssueDate)
		}
	}
	if len(recommendations) > 0 {
		ux.Info("you might like:")
		for _, book := range recommendations {
			ux.StatusLine(fmt.Sprintf("%s  %s", book.ID, book.Title), ux.IconBook, book.Status)
		}
	}
}

func renderDraft(draft IssuanceDraft, reason string) {
	text := fmt.Sprintf("book: %s (%s)\nborrower: %s", draft.BookTitle, draft.BookID, draft.Borrower)
	if reason != "" {
		ux.WarningBox("Issue Draft", text+"\nlast attempt: "+reason)
		return
	}
	ux.Box("Issue Draft", text)
}

func renderHelp(role string) {
	var b strings.Builder
	b.WriteString("dashboard            catalog counters\n")
	b.WriteString("books [term] [all|available|issued]\n")
	b.WriteString("issue <id>           open an issue draft\n")
	b.WriteString("borrower <name>      change draft borrower\n")
	b.WriteString("confirm              submit the draft\n")
	b.WriteString("cancel               abandon the draft\n")
	b.WriteString("return <id>          return a book")
	if CanAddBook(role) {
		b.WriteString("\nadd <title>          add a book")
	}
	if CanDelete(role) {
		b.WriteString("\ndelete <id>          remove a book")
	}
	if HasTab(role, TabHistory) {
		b.WriteString("\nhistory              transaction log")
	}
	if HasTab(role, TabProfile) {
		b.WriteString("\nprofile              your loans and picks")
	}
	b.WriteString("\nchat                 ask the assistant")
	b.WriteString("\nlogout               switch user")
	b.WriteString("\nexit                 leave")
	ux.Box("Commands", b.String())
}

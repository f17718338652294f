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
	"fmt"
	"io"
	"strings"

	"github.com/centralib/lms/pkg/logging"
	"github.com/centralib/lms/pkg/ux"
	"github.com/centralib/lms/pkg/validation"
	"github.com/centralib/lms/services/catalog/datatypes"
)

var errLogout = errors.New("logout")

// Shell is the interactive client session: a login flow followed by a
// role-gated command loop over the catalog.
type Shell struct {
	cfg       *Config
	api       *APIClient
	sessions  *SessionStore
	inventory *InventoryCache
	issuance  *IssuanceController
	actions   *ActionRunner
	picks     *Recommender
	logger    *logging.Logger
	reader    PromptingInputReader
}

// NewShell wires a shell over api using reader for input.
func NewShell(cfg *Config, api *APIClient, reader PromptingInputReader, logger *logging.Logger) *Shell {
	if logger == nil {
		logger = logging.Default()
	}
	inventory := NewInventoryCache(api, logger)
	return &Shell{
		cfg:       cfg,
		api:       api,
		sessions:  NewSessionStore(),
		inventory: inventory,
		issuance:  NewIssuanceController(api, inventory.Refresh),
		actions:   NewActionRunner(api, inventory.Refresh, cfg.Client.DeleteRefreshMode, logger),
		picks:     NewRecommender(cfg.Client.RecommendationSeed),
		logger:    logger,
		reader:    reader,
	}
}

// Run drives login and command loops until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	ux.Title("Central Library")

	for {
		user, err := s.loginFlow(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		s.sessions.Login(*user)
		s.logger.Info("user signed in", "name", user.Name, "role", user.Role)
		ux.Success(fmt.Sprintf("welcome, %s", user.Name))

		if err := s.inventory.Refresh(ctx); err != nil {
			ux.Warning("catalog refresh incomplete: " + err.Error())
		}

		err = s.commandLoop(ctx)
		s.sessions.Logout()
		s.issuance.Cancel()
		if errors.Is(err, errLogout) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

// ============================================================================
// Login
// ============================================================================

func (s *Shell) loginFlow(ctx context.Context) (*datatypes.User, error) {
	for {
		role, err := s.ask("role (admin/librarian/student): ")
		if err != nil {
			return nil, err
		}
		role = strings.ToLower(role)

		var req datatypes.LoginRequest
		req.Role = role
		switch role {
		case datatypes.RoleAdmin, datatypes.RoleLibrarian:
			password, err := s.ask("password: ")
			if err != nil {
				return nil, err
			}
			req.Password = password
		case datatypes.RoleStudent:
			email, err := s.ask("email: ")
			if err != nil {
				return nil, err
			}
			if err := validation.ValidateEmail(email); err != nil {
				ux.Error("invalid email address")
				continue
			}
			mobile, err := s.ask("mobile (10 digits): ")
			if err != nil {
				return nil, err
			}
			if err := validation.ValidateMobile(mobile); err != nil {
				ux.Error("mobile number must be exactly 10 digits")
				continue
			}
			req.Email = email
			req.Mobile = mobile
		default:
			ux.Error("unknown role, choose admin, librarian or student")
			continue
		}

		user, err := s.api.Login(ctx, req)
		if err != nil {
			if rej, ok := AsRejection(err); ok {
				ux.Error(rej.Message)
				continue
			}
			return nil, err
		}
		return user, nil
	}
}

// ============================================================================
// Command loop
// ============================================================================

func (s *Shell) commandLoop(ctx context.Context) error {
	user, _ := s.sessions.Current()

	for {
		// Reset every iteration; confirmation prompts and the chat loop
		// change it mid-command.
		s.reader.SetPrompt(fmt.Sprintf("%s@lms> ", strings.ToLower(user.Role)))
		line, err := s.reader.ReadLine()
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "help":
			renderHelp(user.Role)
		case "dashboard":
			s.cmdDashboard(ctx, user)
		case "books":
			s.cmdBooks(args)
		case "issue":
			s.cmdIssue(args, user)
		case "borrower":
			s.cmdBorrower(args)
		case "confirm":
			s.cmdConfirm(ctx)
		case "cancel":
			s.issuance.Cancel()
			ux.Info("draft abandoned")
		case "return":
			s.cmdReturn(ctx, args, user)
		case "add":
			s.cmdAdd(ctx, args, user)
		case "delete":
			s.cmdDelete(ctx, args, user)
		case "history":
			s.cmdHistory(ctx, user)
		case "profile":
			s.cmdProfile(user)
		case "chat":
			s.cmdChat(ctx, user)
		case "logout":
			return errLogout
		case "exit", "quit":
			return io.EOF
		default:
			ux.Error(fmt.Sprintf("unknown command %q, try 'help'", cmd))
		}
	}
}

func (s *Shell) cmdDashboard(ctx context.Context, user datatypes.User) {
	if err := s.inventory.Refresh(ctx); err != nil {
		ux.Warning("refresh incomplete: " + err.Error())
	}
	renderDashboard(user, s.inventory.Stats())
}

func (s *Shell) cmdBooks(args []string) {
	search := ""
	status := StatusAll
	if len(args) > 0 {
		// Allow "books issued" as well as "books park issued".
		if len(args) == 1 && ParseStatusFilter(args[0]) != StatusAll {
			status = ParseStatusFilter(args[0])
		} else {
			search = args[0]
			if len(args) > 1 {
				status = ParseStatusFilter(args[1])
			}
		}
	}
	renderBooks(FilterBooks(s.inventory.Books(), search, status))
}

func (s *Shell) cmdIssue(args []string, user datatypes.User) {
	if !CanIssue(user.Role) {
		ux.Error("your role cannot issue books")
		return
	}
	if len(args) != 1 {
		ux.Error("usage: issue <id>")
		return
	}
	if err := validation.ValidateBookID(args[0]); err != nil {
		ux.Error("book ID must be numeric")
		return
	}
	book, ok := s.inventory.Find(args[0])
	if !ok {
		ux.Error("no such book in the catalog")
		return
	}
	if book.Issued() {
		ux.Error(fmt.Sprintf("'%s' is already issued", book.Title))
		return
	}
	s.issuance.Open(book, user)
	renderDraft(s.issuance.Draft(), "")
	if CanEditBorrower(user.Role) {
		ux.Muted("use 'borrower <name>' to lend to someone else, then 'confirm'")
	} else {
		ux.Muted("type 'confirm' to borrow this book")
	}
}

func (s *Shell) cmdBorrower(args []string) {
	if len(args) == 0 {
		ux.Error("usage: borrower <name>")
		return
	}
	if err := s.issuance.SetBorrower(strings.Join(args, " ")); err != nil {
		ux.Error(err.Error())
		return
	}
	renderDraft(s.issuance.Draft(), "")
}

func (s *Shell) cmdConfirm(ctx context.Context) {
	if s.issuance.State() != IssuanceDraftOpen {
		ux.Error("no issue draft open, use 'issue <id>' first")
		return
	}
	draft := s.issuance.Draft()
	if draft.Borrower == "" {
		ux.Warning("borrower is empty, set one with 'borrower <name>'")
		return
	}
	err := ux.WithSpinner(fmt.Sprintf("issuing '%s'", draft.BookTitle), func() error {
		return s.issuance.Confirm(ctx)
	})
	if err != nil {
		// An idle controller means the issue itself landed and only the
		// follow-up refresh failed.
		if s.issuance.State() == IssuanceIdle {
			ux.Success(fmt.Sprintf("'%s' issued to %s", draft.BookTitle, draft.Borrower))
			ux.Warning("catalog refresh incomplete: " + err.Error())
			return
		}
		renderDraft(s.issuance.Draft(), s.issuance.Reason())
		return
	}
	ux.Success(fmt.Sprintf("'%s' issued to %s", draft.BookTitle, draft.Borrower))
}

func (s *Shell) cmdReturn(ctx context.Context, args []string, user datatypes.User) {
	if !CanReturn(user.Role) {
		ux.Error("your role cannot return books")
		return
	}
	if len(args) != 1 {
		ux.Error("usage: return <id>")
		return
	}
	ok, err := s.confirmAction("Return this book?")
	if err != nil || !ok {
		if err == nil {
			ux.Info("return cancelled")
		}
		return
	}
	if err := s.actions.ReturnBook(ctx, args[0]); err != nil {
		if rej, ok := AsRejection(err); ok {
			ux.Error(rej.Message)
		} else {
			ux.Error("return failed: " + err.Error())
		}
		return
	}
	ux.Success("book returned")
}

func (s *Shell) cmdAdd(ctx context.Context, args []string, user datatypes.User) {
	if !CanAddBook(user.Role) {
		ux.Error("only admins can add books")
		return
	}
	title := strings.Join(args, " ")
	if err := s.actions.AddBook(ctx, title); err != nil {
		if errors.Is(err, ErrEmptyTitle) {
			ux.Error("usage: add <title>")
		} else if rej, ok := AsRejection(err); ok {
			ux.Error(rej.Message)
		} else {
			ux.Error("add failed: " + err.Error())
		}
		return
	}
	ux.Success(fmt.Sprintf("'%s' added to the catalog", title))
}

func (s *Shell) cmdDelete(ctx context.Context, args []string, user datatypes.User) {
	if len(args) != 1 {
		ux.Error("usage: delete <id>")
		return
	}
	if !CanDelete(user.Role) {
		ux.Error("only admins can delete books")
		return
	}
	ok, err := s.confirmAction("Are you sure you want to delete this book?")
	if err != nil || !ok {
		if err == nil {
			ux.Info("delete cancelled")
		}
		return
	}
	if err := s.actions.DeleteBook(ctx, args[0], user.Role); err != nil {
		if errors.Is(err, ErrNotPermitted) {
			ux.Error("only admins can delete books")
		} else if rej, ok := AsRejection(err); ok {
			msg := rej.Message
			if rej.Status == 403 {
				msg = "the catalog refused: admin role required"
			}
			ux.Error(msg)
		} else {
			ux.Error("delete failed: " + err.Error())
		}
		return
	}
	ux.Success("book deleted")
}

func (s *Shell) cmdHistory(ctx context.Context, user datatypes.User) {
	if !HasTab(user.Role, TabHistory) {
		ux.Error("history is only visible to staff")
		return
	}
	entries, err := s.api.History(ctx)
	if err != nil {
		ux.Error("could not load history: " + err.Error())
		return
	}
	renderHistory(entries)
}

func (s *Shell) cmdProfile(user datatypes.User) {
	if !HasTab(user.Role, TabProfile) {
		ux.Error("profile is only available to students")
		return
	}
	var loans []datatypes.Book
	for _, b := range s.inventory.Books() {
		if b.Issued() && b.LenderName == user.Name {
			loans = append(loans, b)
		}
	}
	renderProfile(user, loans, s.picks.Pick(s.inventory.Books(), 2))
}

func (s *Shell) cmdChat(ctx context.Context, user datatypes.User) {
	session := NewChatSession(s.api, s.logger)
	if err := RunChatLoop(ctx, session, s.reader, user.Name, user.Role); err != nil {
		ux.Error("chat ended: " + err.Error())
	}
}

func (s *Shell) ask(prompt string) (string, error) {
	s.reader.SetPrompt(prompt)
	return s.reader.ReadLine()
}

// confirmAction asks a y/n question. Anything other than yes aborts.
func (s *Shell) confirmAction(question string) (bool, error) {
	answer, err := s.ask(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

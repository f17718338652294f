// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centralib/lms/services/catalog/datatypes"
	"github.com/centralib/lms/services/catalog/store"
)

// IssueBook loans a book out to a named borrower.
func IssueBook(s BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.IssueRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the issue request", "error", err)
			c.JSON(http.StatusBadRequest, datatypes.ActionResponse{
				Success: false, Message: "Missing book_id or user_name",
			})
			return
		}
		if req.BookID == "" || req.UserName == "" {
			c.JSON(http.StatusBadRequest, datatypes.ActionResponse{
				Success: false, Message: "Missing book_id or user_name",
			})
			return
		}

		b, err := s.Issue(req.BookID, req.UserName)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, datatypes.ActionResponse{
				Success: false, Message: "Invalid Book ID",
			})
		case errors.Is(err, store.ErrAlreadyIssued):
			c.JSON(http.StatusConflict, datatypes.ActionResponse{
				Success: false, Message: "Book Already Issued",
			})
		case err != nil:
			slog.Error("Issue failed", "book_id", req.BookID, "error", err)
			c.JSON(http.StatusInternalServerError, datatypes.ActionResponse{
				Success: false, Message: "Operation failed",
			})
		default:
			slog.Info("Book issued", "book_id", b.ID, "lender", req.UserName)
			c.JSON(http.StatusOK, datatypes.ActionResponse{
				Success: true,
				Message: "Book Issued",
				Logs:    fmt.Sprintf("Book issued successfully on %s", b.IssueDate),
			})
		}
	}
}

// ReturnBook clears the loan on a book. Returning a book that was never
// issued still succeeds.
func ReturnBook(s BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ReturnRequest
		if err := c.BindJSON(&req); err != nil || req.BookID == "" {
			c.JSON(http.StatusBadRequest, datatypes.ActionResponse{
				Success: false, Message: "Missing book_id",
			})
			return
		}

		if _, err := s.Return(req.BookID); err != nil {
			c.JSON(http.StatusNotFound, datatypes.ActionResponse{
				Success: false, Message: "Invalid Book ID",
			})
			return
		}
		slog.Info("Book returned", "book_id", req.BookID)
		c.JSON(http.StatusOK, datatypes.ActionResponse{
			Success: true, Message: "Book Returned",
		})
	}
}

// AddBook appends a new title to the catalog.
func AddBook(s BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.AddRequest
		if err := c.BindJSON(&req); err != nil || req.Title == "" {
			c.JSON(http.StatusBadRequest, datatypes.ActionResponse{
				Success: false, Message: "Missing title",
			})
			return
		}

		b, err := s.Add(req.Title)
		if err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ActionResponse{
				Success: false, Message: "Empty title not allowed",
			})
			return
		}
		slog.Info("Book added", "book_id", b.ID, "title", b.Title)
		c.JSON(http.StatusOK, datatypes.ActionResponse{
			Success: true, Message: "Book Added",
		})
	}
}

// DeleteBook removes an available book. The caller must present a
// "role: admin" header; the client-side gate is not trusted.
func DeleteBook(s BookStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("role") != datatypes.RoleAdmin {
			c.JSON(http.StatusForbidden, datatypes.ActionResponse{
				Success: false, Message: "Unauthorized",
			})
			return
		}

		var req datatypes.DeleteRequest
		if err := c.BindJSON(&req); err != nil || req.BookID == "" {
			c.JSON(http.StatusBadRequest, datatypes.ActionResponse{
				Success: false, Message: "Missing book_id",
			})
			return
		}
		if req.Confirm == "" {
			req.Confirm = "y"
		}

		err := s.Delete(req.BookID, req.Confirm)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusOK, datatypes.ActionResponse{
				Success: false, Message: "Delete Failed", Logs: "Book ID not found",
			})
		case errors.Is(err, store.ErrBookOnLoan):
			c.JSON(http.StatusOK, datatypes.ActionResponse{
				Success: false, Message: "Delete Failed", Logs: "Cannot delete issued book!",
			})
		case errors.Is(err, store.ErrNotConfirmed):
			c.JSON(http.StatusOK, datatypes.ActionResponse{
				Success: false, Message: "Delete Failed", Logs: "Delete cancelled",
			})
		case err != nil:
			slog.Error("Delete failed", "book_id", req.BookID, "error", err)
			c.JSON(http.StatusInternalServerError, datatypes.ActionResponse{
				Success: false, Message: "Delete Failed",
			})
		default:
			slog.Info("Book deleted", "book_id", req.BookID)
			c.JSON(http.StatusOK, datatypes.ActionResponse{
				Success: true, Message: "Book Deleted",
			})
		}
	}
}

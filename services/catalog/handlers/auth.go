// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/centralib/lms/pkg/validation"
	"github.com/centralib/lms/services/catalog/datatypes"
)

// Dev credentials for the staff roles. Real credential storage is out of
// scope for this service.
const (
	adminPassword     = "admin123"
	librarianPassword = "lib123"
)

// Login authenticates by role. Admin and librarian check a password;
// students are admitted on a valid email plus a 10-digit mobile, with a
// display name derived from the email local part.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.LoginRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.LoginResponse{
				Success: false, Message: "Invalid Role",
			})
			return
		}

		switch req.Role {
		case datatypes.RoleAdmin:
			if req.Password != adminPassword {
				c.JSON(http.StatusUnauthorized, datatypes.LoginResponse{
					Success: false, Message: "Invalid Admin Password",
				})
				return
			}
			c.JSON(http.StatusOK, datatypes.LoginResponse{
				Success: true,
				User:    &datatypes.User{Name: "Administrator", Role: datatypes.RoleAdmin, ID: "ADMIN-001"},
			})

		case datatypes.RoleLibrarian:
			if req.Password != librarianPassword {
				c.JSON(http.StatusUnauthorized, datatypes.LoginResponse{
					Success: false, Message: "Invalid Librarian Password",
				})
				return
			}
			c.JSON(http.StatusOK, datatypes.LoginResponse{
				Success: true,
				User:    &datatypes.User{Name: "Librarian", Role: datatypes.RoleLibrarian, ID: "LIB-001"},
			})

		case datatypes.RoleStudent:
			if req.Email == "" || req.Mobile == "" {
				c.JSON(http.StatusBadRequest, datatypes.LoginResponse{
					Success: false, Message: "Email and Mobile required",
				})
				return
			}
			if err := validation.ValidateEmail(req.Email); err != nil {
				c.JSON(http.StatusBadRequest, datatypes.LoginResponse{
					Success: false, Message: "Invalid Email Format",
				})
				return
			}
			if err := validation.ValidateMobile(req.Mobile); err != nil {
				c.JSON(http.StatusBadRequest, datatypes.LoginResponse{
					Success: false, Message: "Mobile must be 10 digits",
				})
				return
			}
			user := &datatypes.User{
				Name:  displayNameFromEmail(req.Email),
				Role:  datatypes.RoleStudent,
				Email: req.Email,
				ID:    "STD-" + req.Mobile[len(req.Mobile)-4:],
			}
			slog.Info("Student login", "id", user.ID)
			c.JSON(http.StatusOK, datatypes.LoginResponse{Success: true, User: user})

		default:
			c.JSON(http.StatusBadRequest, datatypes.LoginResponse{
				Success: false, Message: "Invalid Role",
			})
		}
	}
}

// displayNameFromEmail title-cases the local part of an email address,
// so "jane.doe@uni.edu" becomes "Jane.Doe".
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	var b strings.Builder
	prevLetter := false
	for _, r := range local {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

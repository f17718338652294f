// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// Roles recognised by the service.
const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RoleStudent   = "student"
)

// LoginRequest is the payload for POST /api/login. Which fields matter
// depends on Role: admin and librarian send Password, students send
// Email and Mobile.
type LoginRequest struct {
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
}

// User is the authenticated identity returned on a successful login.
type User struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// LoginResponse is the result of POST /api/login.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-supplied
// credentials and catalog inputs.
//
// The same rules run on both sides of the wire: the client validates
// before sending so the user gets an immediate error, and the service
// validates again because it cannot trust the caller.
package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// mobilePattern matches exactly ten digits, no separators or country code.
var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidateEmail validates a student email address.
//
// Returns an error if the address is empty or not a plausible email.
//
// Example:
//
//	if err := validation.ValidateEmail(email); err != nil {
//	    return fmt.Errorf("login rejected: %w", err)
//	}
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email format: %q", email)
	}
	return nil
}

// ValidateMobile validates a student mobile number: exactly ten digits.
func ValidateMobile(mobile string) error {
	if mobile == "" {
		return fmt.Errorf("mobile cannot be empty")
	}
	if !mobilePattern.MatchString(mobile) {
		return fmt.Errorf("mobile must be 10 digits")
	}
	return nil
}

// ValidateBookID validates a catalog book ID. IDs are numeric strings
// assigned by the service; anything else is rejected before it reaches
// the wire.
func ValidateBookID(id string) error {
	if id == "" {
		return fmt.Errorf("book id cannot be empty")
	}
	if err := validate.Var(id, "number"); err != nil {
		return fmt.Errorf("invalid book id: %q (must be numeric)", id)
	}
	return nil
}

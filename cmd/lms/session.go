// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"sync"

	"github.com/centralib/lms/services/catalog/datatypes"
)

// SessionStore holds the signed-in user for the lifetime of the process.
// Logout clears it completely; nothing from a previous session survives
// into the next login.
type SessionStore struct {
	mu   sync.RWMutex
	user *datatypes.User
}

// NewSessionStore returns an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Login records user as the active session, replacing any previous one.
func (s *SessionStore) Login(user datatypes.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
}

// Logout clears the active session.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Current returns a copy of the active user, or false when nobody is
// signed in.
func (s *SessionStore) Current() (datatypes.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return datatypes.User{}, false
	}
	return *s.user, true
}

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
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/centralib/lms/pkg/logging"
	"github.com/centralib/lms/services/catalog/datatypes"
)

// inventoryAPI is the slice of the catalog client the cache needs.
type inventoryAPI interface {
	Books(ctx context.Context) ([]datatypes.Book, error)
	Stats(ctx context.Context) (datatypes.Stats, error)
}

// InventoryCache holds the client's view of the catalog. Refresh fetches
// books and stats concurrently; each endpoint fails independently, so a
// stats outage never blanks the book list. Snapshots are replaced
// wholesale, never merged, and the generation counter only moves forward.
type InventoryCache struct {
	mu         sync.RWMutex
	api        inventoryAPI
	logger     *logging.Logger
	books      []datatypes.Book
	stats      datatypes.Stats
	generation uint64
}

// NewInventoryCache creates an empty cache backed by api.
func NewInventoryCache(api inventoryAPI, logger *logging.Logger) *InventoryCache {
	if logger == nil {
		logger = logging.Default()
	}
	return &InventoryCache{api: api, logger: logger}
}

// Refresh re-fetches books and stats. A partial failure keeps the stale
// snapshot for the failed half and still bumps the generation if the
// other half succeeded. The returned error joins whatever failed.
func (c *InventoryCache) Refresh(ctx context.Context) error {
	var (
		books    []datatypes.Book
		stats    datatypes.Stats
		booksErr error
		statsErr error
	)

	// Plain errgroup without a derived context: one endpoint failing
	// must not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		books, booksErr = c.api.Books(ctx)
		return nil
	})
	g.Go(func() error {
		stats, statsErr = c.api.Stats(ctx)
		return nil
	})
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if booksErr == nil {
		c.books = books
	} else {
		c.logger.Warn("book refresh failed, keeping stale snapshot", "error", booksErr)
	}
	if statsErr == nil {
		c.stats = stats
	} else {
		c.logger.Warn("stats refresh failed, keeping stale snapshot", "error", statsErr)
	}
	if booksErr == nil || statsErr == nil {
		c.generation++
	}
	return errors.Join(booksErr, statsErr)
}

// Books returns a copy of the current book snapshot.
func (c *InventoryCache) Books() []datatypes.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]datatypes.Book, len(c.books))
	copy(out, c.books)
	return out
}

// Stats returns the current dashboard counters.
func (c *InventoryCache) Stats() datatypes.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Generation returns the snapshot generation. It increases on every
// refresh that updated at least one half of the snapshot.
func (c *InventoryCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Find returns the cached book with the given ID.
func (c *InventoryCache) Find(bookID string) (datatypes.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.books {
		if b.ID == bookID {
			return b, true
		}
	}
	return datatypes.Book{}, false
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

// DefaultTitles seeds a fresh store when no books file is supplied. The
// list mirrors the stock the legacy deployment shipped with.
var DefaultTitles = []string{
	"The Adventures of Sherlock Holmes",
	"The Case of the Lame Canary",
	"Jurassic Park",
	"Angels & Demons",
	"Crime and Punishment",
	"Animal Farm",
	"Harry Potter and the Goblet of Fire",
	"The Fellowship of the Ring",
	"Wealth of Nations",
	"Freakonomics",
	"Physics & Philosophy",
	"Surely You're Joking Mr Feynman",
	"Fundamentals of Wavelets",
	"Signals and Systems",
	"Discovery of India",
	"My Experiments with Truth",
	"Farewell to Arms",
	"Grapes of Wrath",
	"The Monk Who Sold His Ferrari",
	"Wings of Fire",
	"Girl with the Dragon Tattoo",
	"War and Peace",
}

// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"fmt"
	"strings"
	"time"
)

// ChatHeaderConfig groups the optional parameters for the chat header so
// new fields can be added without breaking callers.
type ChatHeaderConfig struct {
	LibraryName string
	UserName    string
	Role        string
}

// ChatHeader prints the banner shown when an assistant session starts.
func ChatHeader(cfg ChatHeaderConfig) {
	p := GetPersonality()
	if p.Level == PersonalityMachine {
		fmt.Printf("CHAT: library=%s user=%s role=%s\n", cfg.LibraryName, cfg.UserName, cfg.Role)
		return
	}

	name := cfg.LibraryName
	if name == "" {
		name = "Library"
	}
	lines := []string{Styles.Title.Render(name + " Assistant")}
	if cfg.UserName != "" {
		lines = append(lines, Styles.Muted.Render(
			fmt.Sprintf("signed in as %s (%s)", cfg.UserName, cfg.Role)))
	}
	lines = append(lines, Styles.Muted.Render("ask about a book, character, or topic. 'exit' to leave"))
	fmt.Println(Styles.Box.Render(strings.Join(lines, "\n")))
}

// UserPrompt returns the styled input prompt for the chat loop.
func UserPrompt() string {
	if GetPersonality().Level == PersonalityMachine {
		return "> "
	}
	return Styles.Highlight.Render("you") + Styles.Muted.Render(" › ")
}

// BotMessage prints one assistant reply.
func BotMessage(text string) {
	if GetPersonality().Level == PersonalityMachine {
		fmt.Printf("BOT: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Subtitle.Render(string(IconBook)), text)
}

// ChatFooter prints the session summary when the chat loop exits.
func ChatFooter(messages int, started time.Time) {
	if GetPersonality().Level == PersonalityMachine {
		fmt.Printf("CHAT_END: messages=%d duration=%s\n", messages, time.Since(started).Round(time.Second))
		return
	}
	Muted(fmt.Sprintf("%d messages in %s", messages, time.Since(started).Round(time.Second)))
}

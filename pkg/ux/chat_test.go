// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"strings"
	"testing"
	"time"
)

func TestChatHeader_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		ChatHeader(ChatHeaderConfig{LibraryName: "Central", UserName: "Jane", Role: "student"})
	})

	if output != "CHAT: library=Central user=Jane role=student\n" {
		t.Errorf("unexpected machine output: %q", output)
	}
}

func TestChatHeader_FullMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityFull)

	output := captureStdout(func() {
		ChatHeader(ChatHeaderConfig{LibraryName: "Central", UserName: "Jane", Role: "student"})
	})

	if !strings.Contains(output, "Central Assistant") {
		t.Errorf("expected library name in header, got %q", output)
	}
	if !strings.Contains(output, "Jane") {
		t.Errorf("expected user name in header, got %q", output)
	}
}

func TestUserPrompt_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	if got := UserPrompt(); got != "> " {
		t.Errorf("expected plain prompt, got %q", got)
	}
}

func TestBotMessage_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		BotMessage("Try Jurassic Park")
	})

	if output != "BOT: Try Jurassic Park\n" {
		t.Errorf("unexpected machine output: %q", output)
	}
}

func TestChatFooter_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)

	output := captureStdout(func() {
		ChatFooter(3, time.Now())
	})

	if !strings.HasPrefix(output, "CHAT_END: messages=3") {
		t.Errorf("unexpected machine output: %q", output)
	}
}

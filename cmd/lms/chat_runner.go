// Copyright (C) 2025 Central Library Systems (dev@centralib.org)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/centralib/lms/pkg/logging"
	"github.com/centralib/lms/pkg/ux"
)

// chatFallback is shown when the assistant endpoint cannot be reached.
// The transcript still records the user's message so the conversation
// reads coherently once the catalog comes back.
const chatFallback = "Sorry, I'm having trouble reaching the catalog right now. Please try again."

// ============================================================================
// Transcript
// ============================================================================

// ChatMessage is one entry in the transcript.
type ChatMessage struct {
	ID     string
	Sender string // "user" or "bot"
	Text   string
	At     time.Time
}

type chatAPI interface {
	Chat(ctx context.Context, message string) (string, error)
}

// ChatSession holds an append-only transcript and forwards messages to
// the assistant. Only one send may be in flight at a time.
type ChatSession struct {
	mu       sync.Mutex
	api      chatAPI
	logger   *logging.Logger
	messages []ChatMessage
	awaiting bool
}

var ErrAwaitingReply = errors.New("a reply is still pending")

// NewChatSession creates an empty session backed by api.
func NewChatSession(api chatAPI, logger *logging.Logger) *ChatSession {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatSession{api: api, logger: logger}
}

// Send appends the user's message, queries the assistant, and appends
// exactly one reply. When the catalog is unreachable the reply is the
// fixed fallback text and the error is returned for logging; the
// transcript is never left without a bot turn.
func (s *ChatSession) Send(ctx context.Context, text string) (ChatMessage, error) {
	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		return ChatMessage{}, ErrAwaitingReply
	}
	s.awaiting = true
	s.messages = append(s.messages, ChatMessage{
		ID:     uuid.NewString(),
		Sender: "user",
		Text:   text,
		At:     time.Now(),
	})
	s.mu.Unlock()

	reply, err := s.api.Chat(ctx, text)
	if err != nil {
		s.logger.Warn("assistant unreachable", "error", err)
		reply = chatFallback
	}

	bot := ChatMessage{
		ID:     uuid.NewString(),
		Sender: "bot",
		Text:   reply,
		At:     time.Now(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, bot)
	s.awaiting = false
	s.mu.Unlock()
	return bot, err
}

// Messages returns a copy of the transcript in order.
func (s *ChatSession) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Awaiting reports whether a send is in flight.
func (s *ChatSession) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// ============================================================================
// Input readers
// ============================================================================

// InputReader abstracts reading one line of user input so the chat loop
// can be driven by a terminal, a pipe, or a test.
type InputReader interface {
	ReadLine() (string, error)
}

// PromptingInputReader is an InputReader whose prompt can be changed
// between reads.
type PromptingInputReader interface {
	InputReader
	SetPrompt(prompt string)
}

// StdinReader reads lines from standard input. Used when input is piped.
type StdinReader struct {
	reader *bufio.Reader
	prompt string
}

// NewStdinReader creates a reader over os.Stdin.
func NewStdinReader() *StdinReader {
	return &StdinReader{reader: bufio.NewReader(os.Stdin)}
}

func (r *StdinReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

func (r *StdinReader) ReadLine() (string, error) {
	if r.prompt != "" {
		fmt.Print(r.prompt)
	}
	line, err := r.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// InteractiveInputReader provides line editing and input history on a
// real terminal, falling back to plain stdin reads when input is piped.
type InteractiveInputReader struct {
	prompt     string
	history    []string
	maxHistory int
	fallback   *StdinReader
}

// NewInteractiveInputReader creates a reader that uses a textinput UI
// when stdin is a terminal.
func NewInteractiveInputReader() *InteractiveInputReader {
	return &InteractiveInputReader{
		maxHistory: 100,
		fallback:   NewStdinReader(),
	}
}

func (r *InteractiveInputReader) SetPrompt(prompt string) {
	r.prompt = prompt
	r.fallback.SetPrompt(prompt)
}

func (r *InteractiveInputReader) ReadLine() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return r.fallback.ReadLine()
	}

	model := newInputModel(r.prompt, r.history)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("input error: %w", err)
	}

	m, ok := final.(inputModel)
	if !ok {
		return "", errors.New("unexpected input model type")
	}
	if m.cancelled {
		return "", io.EOF
	}

	line := strings.TrimSpace(m.input.Value())
	r.addToHistory(line)
	return line, nil
}

func (r *InteractiveInputReader) addToHistory(line string) {
	if line == "" {
		return
	}
	if len(r.history) > 0 && r.history[len(r.history)-1] == line {
		return
	}
	r.history = append(r.history, line)
	if len(r.history) > r.maxHistory {
		r.history = r.history[len(r.history)-r.maxHistory:]
	}
}

type inputModel struct {
	input      textinput.Model
	history    []string
	historyIdx int
	cancelled  bool
	done       bool
}

func newInputModel(prompt string, history []string) inputModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80
	return inputModel{
		input:      ti,
		history:    history,
		historyIdx: len(history),
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.input.SetValue("")
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyUp:
			if m.historyIdx > 0 {
				m.historyIdx--
				m.input.SetValue(m.history[m.historyIdx])
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyDown:
			if m.historyIdx < len(m.history)-1 {
				m.historyIdx++
				m.input.SetValue(m.history[m.historyIdx])
				m.input.CursorEnd()
			} else if m.historyIdx == len(m.history)-1 {
				m.historyIdx++
				m.input.SetValue("")
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.input.View()
}

// MockInputReader replays a fixed script of inputs. Returns io.EOF once
// the script is exhausted.
type MockInputReader struct {
	inputs []string
	index  int
	prompt string
}

// NewMockInputReader creates a reader that yields inputs in order.
func NewMockInputReader(inputs []string) *MockInputReader {
	return &MockInputReader{inputs: inputs}
}

func (r *MockInputReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

func (r *MockInputReader) ReadLine() (string, error) {
	if r.index >= len(r.inputs) {
		return "", io.EOF
	}
	line := r.inputs[r.index]
	r.index++
	return line, nil
}

// ============================================================================
// Chat loop
// ============================================================================

func isExitCommand(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exit", "quit", "bye":
		return true
	}
	return false
}

// RunChatLoop drives an assistant conversation over reader until the
// user exits or input ends. Empty lines are ignored. Transport failures
// surface as the fallback reply but never end the loop.
func RunChatLoop(ctx context.Context, session *ChatSession, reader PromptingInputReader, userName, role string) error {
	ux.ChatHeader(ux.ChatHeaderConfig{
		LibraryName: "Central Library",
		UserName:    userName,
		Role:        role,
	})
	started := time.Now()
	reader.SetPrompt(ux.UserPrompt())

	for {
		line, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if line == "" {
			continue
		}
		if isExitCommand(line) {
			break
		}

		// Transport failures already surface as the fallback reply.
		reply, _ := session.Send(ctx, line)
		ux.BotMessage(reply.Text)
	}

	ux.ChatFooter(len(session.Messages()), started)
	return nil
}

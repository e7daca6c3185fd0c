// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode coach chat.
//
// Command: chat
// Short:   Chat with the coach without the full-screen UI
//
// Interactive Commands:
//   /help, /h           Show available commands
//   /clear, /c          Clear the conversation on screen
//   /history            Show the conversation so far
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/forgefit-tui/internal/config"
	"github.com/jeranaias/forgefit-tui/internal/model"
	"github.com/jeranaias/forgefit-tui/internal/page"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI. An empty historyFile uses chat_history in
// the config directory.
func NewChatCLI(historyFile string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	if historyFile == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		historyFile = filepath.Join(dir, "chat_history")
	}

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory writes the history file, owner read/write only.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// ChatOptions configures a line-mode chat session.
type ChatOptions struct {
	BaseURL     string
	Markdown    bool
	Width       int
	HistoryFile string
	Quiet       bool
}

// ChatSession drives a page.ChatSidebar from a line-oriented terminal. The
// sidebar keeps the same message list the dashboard shows.
type ChatSession struct {
	Sidebar   *page.ChatSidebar
	Out       io.Writer
	BaseURL   string
	StartTime time.Time
	Sent      int

	renderer *glamour.TermRenderer
}

// NewChatSession creates a session writing to out.
func NewChatSession(ctx context.Context, backend page.Backend, out io.Writer, opts ChatOptions) *ChatSession {
	s := &ChatSession{
		Sidebar:   page.New(ctx, backend, page.DefaultOptions()).Chat,
		Out:       out,
		BaseURL:   strings.TrimRight(opts.BaseURL, "/"),
		StartTime: time.Now(),
	}
	s.Sidebar.Open = true

	if opts.Markdown {
		width := opts.Width
		if width <= 0 {
			width = GetTerminalWidth()
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-2),
		)
		if err == nil {
			s.renderer = r
		}
	}
	return s
}

// Send posts input and prints what the sidebar appended for it, except the
// user's own line, which is already on screen. Blank input prints nothing.
func (s *ChatSession) Send(input string) {
	s.Sidebar.Input = input
	n := len(s.Sidebar.Messages)

	cmd := s.Sidebar.Send()
	if cmd == nil {
		return
	}
	s.Sent++
	fmt.Fprintln(s.Out, DimStyle.Render(model.TypingText))

	if reply, ok := cmd().(page.ChatReplyMsg); ok {
		s.Sidebar.ApplyReply(reply)
	}
	for _, m := range s.Sidebar.Messages[n:] {
		if m.Role == model.ChatRoleUser || m.Role == model.ChatRoleTyping {
			continue
		}
		s.print(m)
	}
}

func (s *ChatSession) print(m model.ChatMessage) {
	switch m.Role {
	case model.ChatRoleAssistant:
		fmt.Fprintln(s.Out, AssistantStyle.Render(m.Role.DisplayName()+":"))
		fmt.Fprintln(s.Out, s.render(m.Text))
	case model.ChatRoleError:
		fmt.Fprintln(s.Out, ErrorStyle.Render(m.Text))
	case model.ChatRoleNotice:
		line := m.Text
		if m.Link != "" {
			line += " " + s.BaseURL + m.Link
		}
		fmt.Fprintln(s.Out, NoticeStyle.Render(line))
	default:
		fmt.Fprintln(s.Out, m.Text)
	}
}

func (s *ChatSession) render(text string) string {
	if s.renderer == nil {
		return text
	}
	out, err := s.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// COMMAND
// =============================================================================

// HandleChatCommand runs the chat REPL until /quit, Ctrl+C or Ctrl+D.
func HandleChatCommand(ctx context.Context, backend page.Backend, opts ChatOptions) error {
	if err := RequiresTTY("chat"); err != nil {
		return err
	}

	session := NewChatSession(ctx, backend, os.Stdout, opts)
	input := NewChatCLI(opts.HistoryFile)
	defer input.Close()

	if !opts.Quiet {
		printWelcome(session)
	}

	for {
		line, err := input.ReadInput("forgefit> ")
		if err != nil {
			// liner.ErrPromptAborted is Ctrl+C; io.EOF is Ctrl+D.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				return err
			}
			fmt.Println()
			printExitSummary(session)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if !handleSlashCommand(line, session) {
				printExitSummary(session)
				return nil
			}
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			printExitSummary(session)
			return nil
		}

		session.Send(line)
		fmt.Fprintln(session.Out)
	}
}

// handleSlashCommand processes slash commands. It returns false to exit.
func handleSlashCommand(cmd string, session *ChatSession) bool {
	parts := strings.Fields(cmd)
	switch strings.ToLower(parts[0]) {
	case "/help", "/h", "/?", "/":
		printHelp(session.Out)
	case "/clear", "/c":
		session.Sidebar.Messages = session.Sidebar.Messages[:0]
		fmt.Fprintln(session.Out, SuccessStyle.Render("[Conversation cleared]"))
	case "/history":
		printHistory(session)
	case "/quit", "/q", "/exit":
		return false
	default:
		fmt.Fprintf(session.Out, "%s unknown command: %s (type /help for commands)\n",
			ErrorStyle.Render("[Error]"), parts[0])
	}
	return true
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

func printWelcome(session *ChatSession) {
	w := session.Out
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("ForgeFit coach"))
	fmt.Fprintln(w, RenderSeparator(30))
	fmt.Fprintf(w, "%s %s\n", RenderLabel("Server:"), ValueStyle.Render(session.BaseURL))
	fmt.Fprintln(w)
	fmt.Fprintln(w, DimStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Fprintln(w)
}

func printHelp(w io.Writer) {
	commands := []struct{ cmd, desc string }{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear the conversation on screen"},
		{"/history", "Show the conversation so far"},
		{"/quit, /q", "Exit chat"},
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Available Commands"))
	fmt.Fprintln(w, RenderSeparator(20))
	for _, c := range commands {
		fmt.Fprintf(w, "  %s  %s\n", SuccessStyle.Render(fmt.Sprintf("%-12s", c.cmd)), DimStyle.Render(c.desc))
	}
	fmt.Fprintln(w)
}

func printHistory(session *ChatSession) {
	w := session.Out
	if len(session.Sidebar.Messages) == 0 {
		fmt.Fprintln(w, DimStyle.Render("[No messages yet]"))
		return
	}

	fmt.Fprintln(w)
	for i, m := range session.Sidebar.Messages {
		content := []rune(strings.ReplaceAll(m.Text, "\n", " "))
		if len(content) > 100 {
			content = append(content[:100], []rune("...")...)
		}
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, m.Role.DisplayName(), string(content))
	}
	fmt.Fprintln(w)
}

func printExitSummary(session *ChatSession) {
	w := session.Out
	if session.Sent > 0 {
		elapsed := time.Since(session.StartTime).Round(time.Second)
		fmt.Fprintf(w, "%s %d sent in %s\n", RenderLabel("Messages:"), session.Sent, elapsed)
	}
	fmt.Fprintln(w, DimStyle.Render("Goodbye!"))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/forgefit-tui/internal/api"
	"github.com/jeranaias/forgefit-tui/internal/model"
)

// Chat texts.
const (
	ChatErrorPrefix   = "Error: "
	ChatUnreachable   = "Failed to connect. Please try again."
	PlanUpdatedNotice = "Your plan has been updated."
	PlanLink          = "/workout/plan"
)

// ChatReplyMsg carries the result of a chat request. PlaceholderID names the
// "Thinking..." node the send appended.
type ChatReplyMsg struct {
	PlaceholderID string
	Reply         *api.ChatResponse
	Err           error
}

// ChatSidebar is the chat panel: visibility, the input line and the message
// list.
type ChatSidebar struct {
	ctx     context.Context
	backend Backend

	Open     bool
	Input    string
	Messages []model.ChatMessage

	// ScrollSeq increments each time the list should scroll to the bottom.
	ScrollSeq int
}

// Toggle shows or hides the sidebar.
func (c *ChatSidebar) Toggle() {
	c.Open = !c.Open
}

// Send posts the trimmed input. Blank input does nothing and returns nil.
//
// Sends are not serialised: a second Send before the first reply arrives
// adds its own placeholder, and replies land in arrival order.
func (c *ChatSidebar) Send() tea.Cmd {
	text := strings.TrimSpace(c.Input)
	if text == "" {
		return nil
	}

	c.append(model.NewChatMessage(model.ChatRoleUser, text))
	c.Input = ""
	c.scroll()

	placeholder := model.NewChatMessage(model.ChatRoleTyping, model.TypingText)
	c.append(placeholder)
	c.scroll()

	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		reply, err := backend.Chat(ctx, text)
		return ChatReplyMsg{PlaceholderID: placeholder.ID, Reply: reply, Err: err}
	}
}

// ApplyReply removes the send's placeholder and appends exactly one terminal
// message, plus a plan notice when the assistant changed the plan.
func (c *ChatSidebar) ApplyReply(msg ChatReplyMsg) {
	c.remove(msg.PlaceholderID)

	switch {
	case msg.Err == nil && msg.Reply != nil:
		c.append(model.NewChatMessage(model.ChatRoleAssistant, msg.Reply.Reply))
		if msg.Reply.PlanUpdated {
			notice := model.NewChatMessage(model.ChatRoleNotice, PlanUpdatedNotice)
			notice.Link = PlanLink
			c.append(notice)
		}
	case msg.Err != nil && !api.IsTransport(msg.Err):
		c.append(model.NewChatMessage(model.ChatRoleError, ChatErrorPrefix+api.ServerMessage(msg.Err, "")))
	default:
		c.append(model.NewChatMessage(model.ChatRoleError, ChatUnreachable))
	}
	c.scroll()
}

// Pending reports whether any send is still waiting for a reply.
func (c *ChatSidebar) Pending() bool {
	for _, m := range c.Messages {
		if m.Role == model.ChatRoleTyping {
			return true
		}
	}
	return false
}

func (c *ChatSidebar) append(m model.ChatMessage) {
	c.Messages = append(c.Messages, m)
}

func (c *ChatSidebar) remove(id string) {
	for i, m := range c.Messages {
		if m.ID == id {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			return
		}
	}
}

func (c *ChatSidebar) scroll() {
	c.ScrollSeq++
}

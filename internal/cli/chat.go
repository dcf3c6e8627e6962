// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command for the ollamagen CLI.
//
// Handles "ollamagen chat", an interactive REPL for conversing with a
// local model. Conversation history lives in memory for the session;
// only the line-input history is persisted, the liner convention.
//
// Interactive commands:
//   /help, /h       Show available commands
//   /clear, /c      Clear conversation history
//   /model [name]   Show or switch model
//   /history        Show conversation history
//   /quit, /q       Exit chat
//   Ctrl+D          Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/ollamagen/internal/config"
	"github.com/jeranaias/ollamagen/internal/genai"
	"github.com/jeranaias/ollamagen/internal/util"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// chatInput wraps liner with persistent input history.
type chatInput struct {
	line        *liner.State
	historyFile string
}

func newChatInput() *chatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	in := &chatInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}

	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}

	return in
}

func (c *chatInput) read(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *chatInput) close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// HandleChat runs the interactive chat REPL.
func HandleChat(args Args) {
	if !IsTTY() {
		exitErr(errors.New("chat requires an interactive terminal; use 'ollamagen ask' for piped input"))
	}

	sess, err := setup(args)
	if err != nil {
		exitErr(err)
	}

	input := newChatInput()
	defer input.close()

	fmt.Println(TitleStyle.Render("ollamagen chat"))
	fmt.Println(DimStyle.Render(fmt.Sprintf("model %s - /help for commands, /quit to exit", sess.model)))
	fmt.Println()

	var history []genai.Content

	for {
		line, err := input.read(PromptStyle.Render("> "))
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session.
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleChatCommand(line, sess, &history); quit {
				return
			}
			continue
		}

		history = append(history, genai.Text(line))

		reply, ok := streamTurn(sess, history, args.System)
		if !ok {
			// The failed turn stays out of history so it can be retried.
			history = history[:len(history)-1]
			continue
		}
		history = append(history, genai.NewModelContent(reply))
	}
}

// streamTurn sends the conversation so far and streams the reply to
// stdout. Returns the full reply text and whether the turn succeeded.
func streamTurn(sess *session, history []genai.Content, system string) (string, bool) {
	req := sess.buildRequest(history, system)

	var full string
	for fragment, err := range sess.gen.GenerateContentStream(context.Background(), req) {
		if err != nil {
			fmt.Println()
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
			return "", false
		}
		text := fragment.Text()
		full += text
		fmt.Print(text)
	}
	fmt.Println()
	fmt.Println()

	return full, true
}

// =============================================================================
// INTERACTIVE COMMANDS
// =============================================================================

// handleChatCommand executes a /command. Returns true when the session
// should end.
func handleChatCommand(line string, sess *session, history *[]genai.Content) bool {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println(CommandStyle.Render("/help") + "          Show this help")
		fmt.Println(CommandStyle.Render("/clear") + "         Clear conversation history")
		fmt.Println(CommandStyle.Render("/model [name]") + "  Show or switch model")
		fmt.Println(CommandStyle.Render("/history") + "       Show conversation history")
		fmt.Println(CommandStyle.Render("/quit") + "          Exit chat")

	case "/clear", "/c":
		*history = nil
		fmt.Println(DimStyle.Render("history cleared"))

	case "/model":
		if len(fields) > 1 {
			sess.model = fields[1]
			fmt.Println(DimStyle.Render("switched to " + sess.model))
		} else {
			fmt.Println(DimStyle.Render("current model: " + sess.model))
		}

	case "/history":
		if len(*history) == 0 {
			fmt.Println(DimStyle.Render("no history yet"))
			break
		}
		for _, turn := range *history {
			preview := util.TruncateRunes(util.FirstLine(contentText(turn)), 70)
			fmt.Printf("%s %s\n", LabelStyle.Render(turn.Role+":"), preview)
		}

	default:
		fmt.Println(WarningStyle.Render("unknown command " + cmd + ", /help for commands"))
	}

	fmt.Println()
	return false
}

// contentText flattens a turn's text parts for display.
func contentText(c genai.Content) string {
	var texts []string
	for _, p := range c.Parts {
		if tp, ok := p.(genai.TextPart); ok {
			texts = append(texts, tp.Text)
		}
	}
	return strings.Join(texts, " ")
}

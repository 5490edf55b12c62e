package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jradek/secondbrain"
)

// Run executes the chat command: an interactive REPL against the knowledge
// base. The transcript lives in memory only; use the HTTP server for
// persisted conversations.
func (c *ChatCmd) Run(deps *Dependencies) error {
	if _, err := deps.Brain.Reindex(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: initial index failed: %s\n", secondbrain.ErrorMessage(err))
	}

	fmt.Fprintln(deps.Stdout, "Second Brain ready. Type /help for commands, /quit to exit.")

	conversationID := uuid.New().String()
	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			fmt.Fprintln(deps.Stdout, "Bye.")
			return nil
		}

		turn, err := deps.Brain.Respond(deps.Ctx, conversationID, line)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", secondbrain.ErrorMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout, turn.Text)
	}
	return scanner.Err()
}

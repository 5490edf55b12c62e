package main

import (
	"fmt"

	"github.com/jradek/secondbrain"
	sbhttp "github.com/jradek/secondbrain/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := deps.Config.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	if _, err := deps.Brain.Reindex(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: initial index failed: %s\n", secondbrain.ErrorMessage(err))
	}

	server := sbhttp.NewServer(deps.Brain, deps.Conversations, deps.Logger)
	deps.Logger.Info("serving", "addr", addr, "document", deps.Config.DocumentPath)
	return server.ListenAndServe(deps.Ctx, addr)
}

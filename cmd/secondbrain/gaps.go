package main

import (
	"fmt"
	"strings"

	"github.com/jradek/secondbrain"
)

// Run executes the gaps command.
func (c *GapsCmd) Run(deps *Dependencies) error {
	if err := deps.Brain.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", secondbrain.ErrorMessage(err))
		return err
	}

	category := secondbrain.Category(strings.ToUpper(c.Category))
	analysis, err := deps.Brain.Gaps(deps.Ctx, category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", secondbrain.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, analysis)
	return nil
}

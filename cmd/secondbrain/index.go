package main

import (
	"fmt"

	"github.com/jradek/secondbrain"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	stats, err := deps.Brain.Reindex(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", secondbrain.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %s\n", deps.Config.DocumentPath)
	fmt.Fprintf(deps.Stdout, "%d/%d sections have content (%d empty)\n",
		stats.CompleteSections, stats.TotalSections, stats.EmptySections)
	return nil
}

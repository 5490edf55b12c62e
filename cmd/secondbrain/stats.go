package main

import (
	"fmt"

	"github.com/jradek/secondbrain"
)

// Run executes the stats command. It only reads and segments the document,
// so it works without an API key.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if err := deps.Brain.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", secondbrain.ErrorMessage(err))
		return err
	}

	stats := deps.Brain.Stats()
	fmt.Fprintf(deps.Stdout, "Total sections: %d\n", stats.TotalSections)
	fmt.Fprintf(deps.Stdout, "Complete: %d\n", stats.CompleteSections)
	fmt.Fprintf(deps.Stdout, "Empty: %d\n", stats.EmptySections)

	for _, category := range deps.Brain.Taxonomy.Categories() {
		cs, ok := stats.PerCategory[category.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(deps.Stdout, "  %s (%s): %d/%d complete\n", category.ID, category.Name, cs.Complete, cs.Total)
	}
	return nil
}

package main

import "fmt"

// Run executes the markers command.
func (c *MarkersCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Brain.ListMarkers())
	return nil
}

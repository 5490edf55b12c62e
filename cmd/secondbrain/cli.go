package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/jradek/secondbrain"
	"github.com/jradek/secondbrain/brain"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
	Config        Config
	Logger        *slog.Logger
	Brain         *brain.Brain
	Conversations secondbrain.ConversationService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Doc string `help:"Path to the knowledge base document (overrides SECONDBRAIN_DOC)"`

	Chat    ChatCmd    `cmd:"" help:"Start an interactive chat session"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API server"`
	Index   IndexCmd   `cmd:"" help:"Segment the document and rebuild the search index"`
	Stats   StatsCmd   `cmd:"" help:"Show document completeness statistics"`
	Gaps    GapsCmd    `cmd:"" help:"Analyze empty sections"`
	Markers MarkersCmd `cmd:"" help:"List all valid section markers"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides SECONDBRAIN_ADDR)"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// GapsCmd is the "gaps" subcommand.
type GapsCmd struct {
	Category string `arg:"" optional:"" help:"Restrict the analysis to one category, e.g. D1"`
}

// MarkersCmd is the "markers" subcommand.
type MarkersCmd struct{}

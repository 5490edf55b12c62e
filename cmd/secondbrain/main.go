package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jradek/secondbrain"
	"github.com/jradek/secondbrain/brain"
	"github.com/jradek/secondbrain/chromem"
	"github.com/jradek/secondbrain/fs"
	"github.com/jradek/secondbrain/gemini"
	sbslog "github.com/jradek/secondbrain/slog"
	"github.com/jradek/secondbrain/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	Config Config

	// Stdin feeds the chat REPL. Defaults to os.Stdin.
	Stdin io.Reader

	// SQLite database used for conversation persistence.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Brain         *brain.Brain
	Conversations secondbrain.ConversationService
}

// NewMain returns a new instance of Main with configuration from the
// environment.
func NewMain() *Main {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = Config{DocumentPath: "knowledge.md", TopK: brain.DefaultTopK, Addr: ":8080"}
	}
	return &Main{Config: cfg}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	stdin := m.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Config: m.Config,
		Logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: m.Config.SlogLevel()})),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("secondbrain"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'secondbrain --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Doc != "" {
		m.Config.DocumentPath = cli.Doc
		deps.Config = m.Config
	}

	if m.Brain == nil {
		b, err := m.buildBrain(ctx, cmd, deps.Logger, stderr)
		if err != nil {
			return err
		}
		m.Brain = b
	}
	deps.Brain = m.Brain

	// Conversations are only persisted by the HTTP server; the REPL keeps
	// its transcript in memory.
	if cmd == "serve" && m.Conversations == nil {
		m.DB = sqlite.NewDB(m.Config.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SECONDBRAIN_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
		}
		m.Conversations = sqlite.NewConversationService(m.DB)
	}
	deps.Conversations = m.Conversations
	defer m.Close()

	return kongCtx.Run(deps)
}

// buildBrain wires the engine for the given command. Commands that never
// talk to the model skip the Gemini client so they work without an API key.
func (m *Main) buildBrain(ctx context.Context, cmd string, logger *slog.Logger, stderr io.Writer) (*brain.Brain, error) {
	taxonomy := secondbrain.DefaultTaxonomy()

	index, err := chromem.NewSearchIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	b := &brain.Brain{
		Taxonomy:  taxonomy,
		Registry:  secondbrain.NewRegistry(taxonomy),
		Documents: sbslog.NewLoggingDocumentService(fs.NewDocumentService(m.Config.DocumentPath), logger),
		Index:     sbslog.NewLoggingSearchIndex(index, logger),
		TopK:      m.Config.TopK,
	}

	if !needsGemini(cmd) {
		return b, nil
	}

	if m.Config.GeminiAPIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  m.Config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	chat := gemini.NewChatService(client)
	chat.Model = m.Config.ChatModel
	classifier := gemini.NewClassifier(client, taxonomy)
	classifier.Model = m.Config.ChatModel
	embedder := gemini.NewEmbedder(client, m.Config.EmbedRPS)
	embedder.Model = m.Config.EmbedModel

	b.Chat = chat
	b.Classifier = classifier
	b.Embedder = embedder
	return b, nil
}

func needsGemini(cmd string) bool {
	switch cmd {
	case "chat", "serve", "index", "gaps":
		return true
	}
	return false
}

// Package brain coordinates the knowledge base: it keeps the section
// registry in sync with the document, answers questions with
// retrieval-augmented chat, analyzes gaps, and runs the classify-then-confirm
// flow that appends new notes to the right section.
package brain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/jradek/secondbrain"
	"golang.org/x/sync/errgroup"
)

// Default tuning values.
const (
	DefaultTopK        = 5
	DefaultConcurrency = 4
)

const sectionDelimiter = "\n\n---\n\n"

const noRelevantSections = "No relevant sections found. Try rephrasing your question."

// Brain is the conversational engine over one knowledge base document. All
// collaborator fields must be set before use; TopK and Concurrency fall back
// to defaults when zero.
//
// Turns within a single conversation are assumed to be serialized by the
// caller; turns across different conversations may run concurrently.
type Brain struct {
	Taxonomy   *secondbrain.Taxonomy
	Registry   *secondbrain.Registry
	Documents  secondbrain.DocumentService
	Classifier secondbrain.Classifier
	Chat       secondbrain.ChatService
	Embedder   secondbrain.Embedder
	Index      secondbrain.SearchIndex

	// Intents overrides the default intent rule set when set.
	Intents *secondbrain.IntentDetector

	// TopK is the number of sections retrieved per query.
	TopK int

	// Concurrency bounds the embedding fan-out during reindexing.
	Concurrency int

	mu        sync.Mutex
	pending   map[string]pendingAppend
	histories map[string]*secondbrain.History
}

// Load reads the document and replaces the registry snapshot with a fresh
// segmentation. It does not touch the vector index.
func (b *Brain) Load(ctx context.Context) error {
	text, err := b.Documents.ReadFullText(ctx)
	if err != nil {
		return err
	}
	b.Registry.Swap(secondbrain.Segment(text, b.Taxonomy))
	return nil
}

// Reindex reads the document, segments it, rebuilds the vector index from
// the non-empty sections, and swaps in the new registry snapshot. On any
// failure the previous snapshot keeps serving.
func (b *Brain) Reindex(ctx context.Context) (secondbrain.Stats, error) {
	text, err := b.Documents.ReadFullText(ctx)
	if err != nil {
		return secondbrain.Stats{}, err
	}
	sections := secondbrain.Segment(text, b.Taxonomy)

	entries, err := b.embedSections(ctx, sections)
	if err != nil {
		return secondbrain.Stats{}, err
	}

	if err := b.Index.Clear(ctx); err != nil {
		return secondbrain.Stats{}, err
	}
	if len(entries) > 0 {
		if err := b.Index.Index(ctx, entries); err != nil {
			return secondbrain.Stats{}, err
		}
	}

	b.Registry.Swap(sections)
	return b.Registry.Stats(), nil
}

// embedSections embeds every non-empty section, preserving section order.
func (b *Brain) embedSections(ctx context.Context, sections []secondbrain.Section) ([]secondbrain.IndexEntry, error) {
	slots := make([]*secondbrain.IndexEntry, len(sections))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency())
	for i, sec := range sections {
		if sec.Empty() {
			continue
		}
		g.Go(func() error {
			text := b.embeddingText(sec)
			vector, err := b.Embedder.Embed(ctx, text)
			if err != nil {
				return err
			}
			slots[i] = &secondbrain.IndexEntry{
				ID:     entryID(sec),
				Vector: vector,
				Text:   text,
				Metadata: map[string]string{
					"marker":   string(sec.Marker),
					"category": string(sec.Category),
					"kind":     sec.Kind,
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []secondbrain.IndexEntry
	for _, e := range slots {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// entryID derives a stable chunk ID from the section's marker and content,
// so unchanged sections keep their identity across reindexes.
func entryID(sec secondbrain.Section) string {
	h := xxhash.Sum64String(string(sec.Marker) + "\n" + sec.Content)
	return fmt.Sprintf("%s#%016x", sec.Marker, h)
}

// embeddingText prepends marker and category metadata to section content.
// The prefix improves retrieval accuracy.
func (b *Brain) embeddingText(sec secondbrain.Section) string {
	var sb strings.Builder
	sb.WriteString(string(sec.Marker))
	sb.WriteString("\n")
	if sec.Category != "" {
		if name, ok := b.Taxonomy.CategoryName(sec.Category); ok {
			fmt.Fprintf(&sb, "Category: %s (%s)\n", sec.Category, name)
		}
	}
	fmt.Fprintf(&sb, "Section: %s\n\n", sec.Kind)
	sb.WriteString(sec.Content)
	return sb.String()
}

// Query answers a question from indexed document content. The search is
// optionally restricted to one category. When retrieval comes back empty the
// chat backend is not called and a fixed fallback message is returned.
func (b *Brain) Query(ctx context.Context, conversationID, question string, category secondbrain.Category) (string, error) {
	vector, err := b.Embedder.Embed(ctx, question)
	if err != nil {
		return "", err
	}

	var filter map[string]string
	if category != "" {
		filter = map[string]string{"category": string(category)}
	}
	results, err := b.Index.Search(ctx, vector, b.topK(), filter)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return noRelevantSections, nil
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Metadata["marker"] + "\n" + r.Text
	}
	turn := fmt.Sprintf("Relevant document context:\n---\n%s\n---\n\nUser question: %s",
		strings.Join(parts, sectionDelimiter), question)

	history := b.history(conversationID)
	answer, err := b.Chat.Converse(ctx, b.systemPrompt(), history.Messages(), turn)
	if err != nil {
		return "", err
	}
	history.Append(question, answer)
	return answer, nil
}

// Gaps summarizes the document's empty sections, optionally restricted to
// one category, and asks the chat backend for prioritized remediation
// suggestions. The call is a stateless one-shot, not part of any
// conversation history.
func (b *Brain) Gaps(ctx context.Context, category secondbrain.Category) (string, error) {
	if category != "" {
		if _, ok := b.Taxonomy.CategoryName(category); !ok {
			return "", secondbrain.Errorf(secondbrain.EINVALID, "Invalid category: %s. Valid categories: %s", category, b.categoryList())
		}
	}

	stats := b.Registry.Stats()
	empty := b.Registry.EmptySections(category)
	if len(empty) == 0 {
		target := "the document"
		if category != "" {
			target = fmt.Sprintf("category %s", category)
		}
		return fmt.Sprintf("No empty sections found in %s. All sections have content.", target), nil
	}

	var sb strings.Builder
	sb.WriteString("Document Status:\n")
	fmt.Fprintf(&sb, "Total sections: %d\n", stats.TotalSections)
	fmt.Fprintf(&sb, "Complete: %d\n", stats.CompleteSections)
	fmt.Fprintf(&sb, "Empty: %d\n", stats.EmptySections)
	sb.WriteString("\nEmpty sections:\n")
	for _, sec := range empty {
		name := "General"
		if n, ok := b.Taxonomy.CategoryName(sec.Category); ok {
			name = n
		}
		fmt.Fprintf(&sb, "- %s (%s)\n", sec.Marker, name)
	}

	prompt := fmt.Sprintf(`Analyze this document status and identify gaps:

%s
For each empty or incomplete section, explain:
1. What content is expected there
2. Why it matters for the document
3. Suggested priority (high/medium/low)

Be specific and actionable.`, sb.String())

	return b.Chat.Converse(ctx, b.systemPrompt(), nil, prompt)
}

// Stats returns document completeness statistics from the current snapshot.
func (b *Brain) Stats() secondbrain.Stats {
	return b.Registry.Stats()
}

// ListMarkers renders the full valid-marker set grouped by category.
func (b *Brain) ListMarkers() string {
	var sb strings.Builder
	sb.WriteString("Available markers:\n")

	current := secondbrain.Category("\x00")
	for _, m := range b.Taxonomy.Markers() {
		category, _, _ := b.Taxonomy.Parse(m)
		if category != current {
			current = category
			if category != "" {
				name, _ := b.Taxonomy.CategoryName(category)
				fmt.Fprintf(&sb, "\n=== %s: %s ===\n", category, name)
			} else {
				sb.WriteString("\n")
			}
		}
		if category != "" {
			fmt.Fprintf(&sb, "  %s\n", m)
		} else {
			fmt.Fprintf(&sb, "%s\n", m)
		}
	}
	return sb.String()
}

func (b *Brain) systemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a research assistant helping manage a structured academic document.\n\n")
	sb.WriteString("The document has these categories:\n")
	for _, c := range b.Taxonomy.Categories() {
		fmt.Fprintf(&sb, "- %s: %s\n", c.ID, c.Name)
	}
	if categories := b.Taxonomy.Categories(); len(categories) > 0 {
		var kinds []string
		for _, m := range b.Taxonomy.MarkersByCategory(categories[0].ID) {
			_, kind, _ := b.Taxonomy.Parse(m)
			kinds = append(kinds, kind)
		}
		fmt.Fprintf(&sb, "\nEach category has sections: %s.\n", strings.Join(kinds, ", "))
	}
	sb.WriteString(`
You help the user:
1. QUERY: Answer questions about the document content
2. REMEMBER: Identify which section new information belongs to
3. GAPS: Analyze what's missing in the document

Always be concise and precise. When classifying content to sections, explain your reasoning briefly.`)
	return sb.String()
}

func (b *Brain) categoryList() string {
	parts := make([]string, 0, len(b.Taxonomy.Categories()))
	for _, c := range b.Taxonomy.Categories() {
		parts = append(parts, string(c.ID))
	}
	return strings.Join(parts, ", ")
}

func (b *Brain) topK() int {
	if b.TopK > 0 {
		return b.TopK
	}
	return DefaultTopK
}

func (b *Brain) concurrency() int {
	if b.Concurrency > 0 {
		return b.Concurrency
	}
	return DefaultConcurrency
}

// history returns the rolling chat window for a conversation, creating it on
// first use.
func (b *Brain) history(conversationID string) *secondbrain.History {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.histories == nil {
		b.histories = make(map[string]*secondbrain.History)
	}
	h, ok := b.histories[conversationID]
	if !ok {
		h = &secondbrain.History{}
		b.histories[conversationID] = h
	}
	return h
}

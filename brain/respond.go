package brain

import (
	"context"
	"fmt"
	"strings"

	"github.com/jradek/secondbrain"
)

var defaultIntents = secondbrain.NewIntentDetector()

const helpText = `Available commands:
/help            Show this help
/index           Re-read the document and rebuild the search index
/stats           Show document completeness statistics
/gaps [category] Analyze empty sections, optionally for one category
/markers         List all valid section markers

Anything else is treated as a question, or as a note when phrased like
"remember ..." / "note that ...". Add "in [MARKER]" to file a note directly.`

// Turn is the assistant's reply to one user message.
type Turn struct {
	Text string

	// PendingConfirmation reports that this conversation is waiting for a
	// yes/no/marker answer before a note is written to the document.
	PendingConfirmation bool

	// Classification is set when a note was just classified and is awaiting
	// confirmation.
	Classification *secondbrain.Classification
}

// Respond processes one user message in a conversation. A pending
// confirmation always takes priority over intent detection, so "yes" answers
// the confirmation rather than becoming a query.
func (b *Brain) Respond(ctx context.Context, conversationID, message string) (Turn, error) {
	message = strings.TrimSpace(message)
	if p, ok := b.getPending(conversationID); ok {
		return b.resolveConfirmation(ctx, conversationID, message, p)
	}
	if message == "" {
		return Turn{Text: helpText}, nil
	}

	u := b.detector().Detect(message)
	switch u.Intent {
	case secondbrain.IntentCommand:
		return b.runCommand(ctx, u)
	case secondbrain.IntentRemember:
		return b.remember(ctx, conversationID, u)
	default:
		answer, err := b.Query(ctx, conversationID, u.Content, "")
		if err != nil {
			return Turn{}, err
		}
		return Turn{Text: answer}, nil
	}
}

func (b *Brain) runCommand(ctx context.Context, u secondbrain.Utterance) (Turn, error) {
	switch u.Command {
	case "/help":
		return Turn{Text: helpText}, nil

	case "/index":
		stats, err := b.Reindex(ctx)
		if err != nil {
			return Turn{Text: "Re-index failed. " + secondbrain.ErrorMessage(err)}, nil
		}
		return Turn{Text: fmt.Sprintf("Re-indexed. %d/%d sections have content.", stats.CompleteSections, stats.TotalSections)}, nil

	case "/stats":
		return Turn{Text: b.formatStats()}, nil

	case "/gaps":
		var category secondbrain.Category
		if len(u.Args) > 0 {
			category = secondbrain.Category(strings.ToUpper(u.Args[0]))
		}
		text, err := b.Gaps(ctx, category)
		if err != nil {
			if secondbrain.ErrorCode(err) == secondbrain.EINVALID {
				return Turn{Text: secondbrain.ErrorMessage(err)}, nil
			}
			return Turn{}, err
		}
		return Turn{Text: text}, nil

	case "/markers":
		return Turn{Text: b.ListMarkers()}, nil

	default:
		return Turn{Text: fmt.Sprintf("Unknown command: %s. Type /help for available commands.", u.Command)}, nil
	}
}

func (b *Brain) formatStats() string {
	stats := b.Stats()

	var sb strings.Builder
	sb.WriteString("Document Statistics\n")
	fmt.Fprintf(&sb, "Total sections: %d\n", stats.TotalSections)
	fmt.Fprintf(&sb, "Complete: %d\n", stats.CompleteSections)
	fmt.Fprintf(&sb, "Empty: %d\n", stats.EmptySections)

	if len(stats.PerCategory) > 0 {
		sb.WriteString("\nBy category:\n")
		for _, c := range b.Taxonomy.Categories() {
			cs, ok := stats.PerCategory[c.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "  %s (%s): %d/%d complete\n", c.ID, c.Name, cs.Complete, cs.Total)
		}
	}
	return sb.String()
}

func (b *Brain) detector() *secondbrain.IntentDetector {
	if b.Intents != nil {
		return b.Intents
	}
	return defaultIntents
}

package brain

import (
	"context"
	"fmt"
	"strings"

	"github.com/jradek/secondbrain"
)

const confirmInstructions = "Type 'yes' to confirm, 'no' to cancel, or specify a different marker like [D2:DEFINITION]."

// pendingAppend is a classified note waiting for the user's confirmation.
// At most one exists per conversation.
type pendingAppend struct {
	Content string
	Marker  secondbrain.Marker
}

// remember handles a new note. With an explicit marker the note is appended
// immediately; otherwise the classifier proposes a marker and the note is
// parked pending confirmation.
func (b *Brain) remember(ctx context.Context, conversationID string, u secondbrain.Utterance) (Turn, error) {
	if u.Marker != "" {
		if !b.Taxonomy.Contains(u.Marker) {
			return Turn{Text: fmt.Sprintf("Invalid marker: %s\nValid markers: %s", u.Marker, b.Taxonomy.MarkerList())}, nil
		}
		msg, err := b.commitAppend(ctx, u.Content, u.Marker)
		if err != nil {
			return Turn{Text: "Failed to add the note. " + secondbrain.ErrorMessage(err)}, nil
		}
		return Turn{Text: msg}, nil
	}

	classification, err := b.Classifier.Classify(ctx, u.Content)
	if err != nil {
		return Turn{}, err
	}
	if classification.Failed() || !b.Taxonomy.Contains(classification.Marker) {
		return Turn{Text: "Could not determine an appropriate section for this note. " +
			"Try again with an explicit marker, e.g. '... in [D1:DEFINITION]'."}, nil
	}

	b.setPending(conversationID, pendingAppend{Content: u.Content, Marker: classification.Marker})

	var sb strings.Builder
	fmt.Fprintf(&sb, "I'll add this to %s.\n", classification.Marker)
	if classification.Reasoning != "" {
		fmt.Fprintf(&sb, "Reasoning: %s\n", classification.Reasoning)
	}
	if classification.Confidence != "" {
		fmt.Fprintf(&sb, "Confidence: %s\n", classification.Confidence)
	}
	sb.WriteString("\n")
	sb.WriteString(confirmInstructions)

	return Turn{
		Text:                sb.String(),
		PendingConfirmation: true,
		Classification:      &classification,
	}, nil
}

// resolveConfirmation consumes the next turn of a conversation that has a
// pending note. A failed commit keeps the pending note so the user can retry
// with another 'yes'.
func (b *Brain) resolveConfirmation(ctx context.Context, conversationID, input string, p pendingAppend) (Turn, error) {
	switch {
	case strings.EqualFold(input, "yes"):
		return b.commitPending(ctx, conversationID, p.Content, p.Marker)

	case strings.EqualFold(input, "no"):
		b.clearPending(conversationID)
		return Turn{Text: "Cancelled. The note was not added."}, nil

	case secondbrain.IsMarkerLiteral(input):
		override := secondbrain.Marker(input)
		if !b.Taxonomy.Contains(override) {
			return Turn{
				Text:                fmt.Sprintf("Invalid marker: %s\n%s", override, confirmInstructions),
				PendingConfirmation: true,
			}, nil
		}
		return b.commitPending(ctx, conversationID, p.Content, override)

	default:
		return Turn{
			Text:                "Please type 'yes', 'no', or a specific marker like [D2:DEFINITION].",
			PendingConfirmation: true,
		}, nil
	}
}

func (b *Brain) commitPending(ctx context.Context, conversationID, content string, marker secondbrain.Marker) (Turn, error) {
	msg, err := b.commitAppend(ctx, content, marker)
	if err != nil {
		return Turn{
			Text: secondbrain.ErrorMessage(err) +
				" The note is still pending; reply 'yes' to retry or 'no' to cancel.",
			PendingConfirmation: true,
		}, nil
	}
	b.clearPending(conversationID)
	return Turn{Text: msg}, nil
}

// commitAppend resolves the marker's insertion point against the current
// document text and splices the note in as a new paragraph.
func (b *Brain) commitAppend(ctx context.Context, content string, marker secondbrain.Marker) (string, error) {
	text, err := b.Documents.ReadFullText(ctx)
	if err != nil {
		return "", err
	}
	offset, err := secondbrain.ResolveInsertionPoint(text, marker, b.Taxonomy)
	if err != nil {
		return "", err
	}
	if err := b.Documents.InsertText(ctx, offset, "\n\n"+content); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added the note to %s. Run /index to refresh search.", marker), nil
}

func (b *Brain) setPending(conversationID string, p pendingAppend) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		b.pending = make(map[string]pendingAppend)
	}
	b.pending[conversationID] = p
}

func (b *Brain) getPending(conversationID string) (pendingAppend, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pending[conversationID]
	return p, ok
}

func (b *Brain) clearPending(conversationID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, conversationID)
}

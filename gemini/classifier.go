package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jradek/secondbrain"
	"google.golang.org/genai"
)

// Ensure Classifier implements secondbrain.Classifier at compile time.
var _ secondbrain.Classifier = (*Classifier)(nil)

// Classifier implements secondbrain.Classifier using Google Gemini. The
// model is asked for a JSON verdict; responses it cannot parse, or markers
// outside the taxonomy, come back as a failed classification rather than an
// error so callers can fall back to asking the user.
type Classifier struct {
	client   *genai.Client
	taxonomy *secondbrain.Taxonomy

	// Model overrides DefaultChatModel when set.
	Model string
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client, taxonomy *secondbrain.Taxonomy) *Classifier {
	return &Classifier{client: client, taxonomy: taxonomy}
}

// Classify determines which section of the document content belongs to.
func (c *Classifier) Classify(ctx context.Context, content string) (secondbrain.Classification, error) {
	if content == "" {
		return secondbrain.Classification{}, secondbrain.Errorf(secondbrain.EINVALID, "content required")
	}

	temp := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: c.systemPrompt()}},
		},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model(),
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: "Classify this content:\n\n" + content}},
		}},
		config,
	)
	if err != nil {
		return secondbrain.Classification{}, err
	}
	if result == nil {
		return secondbrain.Classification{}, secondbrain.Errorf(secondbrain.EINTERNAL, "gemini returned nil result")
	}

	return ParseClassification(result.Text(), c.taxonomy), nil
}

func (c *Classifier) systemPrompt() string {
	return fmt.Sprintf(`You classify notes into sections of a structured research document.

Valid markers:
%s

Respond with JSON only, in this shape:
{"marker": "[D1:DEFINITION]", "confidence": "high", "reasoning": "one short sentence"}

Confidence is one of "high", "medium" or "low". The marker must be copied
exactly from the valid list. If no marker fits, use an empty marker.`,
		c.taxonomy.MarkerList())
}

func (c *Classifier) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultChatModel
}

// ParseClassification decodes a model response into a Classification. Code
// fences are tolerated. Anything unparseable, and any marker the taxonomy
// does not contain, yields a failed (zero-marker) classification.
func ParseClassification(raw string, taxonomy *secondbrain.Taxonomy) secondbrain.Classification {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed struct {
		Marker     string `json:"marker"`
		Confidence string `json:"confidence"`
		Reasoning  string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return secondbrain.Classification{}
	}

	marker := secondbrain.Marker(strings.TrimSpace(parsed.Marker))
	if !taxonomy.Contains(marker) {
		return secondbrain.Classification{}
	}

	category, kind, _ := taxonomy.Parse(marker)
	confidence := secondbrain.Confidence(strings.ToLower(parsed.Confidence))
	switch confidence {
	case secondbrain.ConfidenceHigh, secondbrain.ConfidenceMedium, secondbrain.ConfidenceLow:
	default:
		confidence = secondbrain.ConfidenceLow
	}

	return secondbrain.Classification{
		Marker:     marker,
		Category:   category,
		Kind:       kind,
		Confidence: confidence,
		Reasoning:  strings.TrimSpace(parsed.Reasoning),
	}
}

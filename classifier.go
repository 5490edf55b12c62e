package secondbrain

import "context"

// Confidence grades how sure the classifier is about a placement.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Classification is the classifier's proposed placement for a note. A zero
// Marker signals that classification failed.
type Classification struct {
	Marker     Marker     `json:"marker"`
	Category   Category   `json:"category,omitempty"`
	Kind       string     `json:"kind"`
	Confidence Confidence `json:"confidence"`
	Reasoning  string     `json:"reasoning"`
}

// Failed reports whether the classifier produced no usable marker.
func (c Classification) Failed() bool { return c.Marker == "" }

// Classifier proposes the document section a piece of content belongs to.
type Classifier interface {
	// Classify determines which section content belongs to. Implementations
	// must map any unparseable model reply to a zero-marker Classification
	// rather than an error.
	Classify(ctx context.Context, content string) (Classification, error)
}

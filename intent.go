package secondbrain

import (
	"regexp"
	"strings"
)

// Intent classifies what a user utterance asks the system to do.
type Intent int

// Intent values.
const (
	IntentQuery Intent = iota
	IntentCommand
	IntentRemember
)

// Utterance is the result of intent detection over one user message.
type Utterance struct {
	Intent Intent

	// Content is the note text for remember intents.
	Content string

	// Marker is the explicit target marker for remember intents of the form
	// "<note> in [<Marker>]". Empty when no marker was given. The marker is
	// syntactic only; taxonomy validation is the caller's job.
	Marker Marker

	// Command and Args are set for command intents.
	Command string
	Args    []string
}

// rememberPatterns are evaluated in priority order; the first match wins.
// Each pattern's first capture group is the note content.
var rememberPatterns = []*regexp.Regexp{
	// Direct commands
	regexp.MustCompile(`(?i)^remember\s+(?:that\s+)?(.+)`),
	regexp.MustCompile(`(?i)^add\s+(?:this|that|the\s+following)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^save\s+(?:this|that)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^note\s+(?:that|this|down)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^record\s+(?:that|this)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^store\s+(?:this|that)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^put\s+(?:this|that)\s+(?:in|into|down)[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^write\s+(?:this|that|down)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^log\s+(?:this|that)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^keep\s+(?:this|that|track)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^insert\s+(?:this|that)?[:\s]*(.+)`),

	// Conversational
	regexp.MustCompile(`(?i)^(?:please\s+)?(?:can you\s+)?(?:add|save|remember|note|record|store|put|write|log|insert)\s+(?:this|that)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^i\s+(?:want|need)\s+(?:to|you\s+to)\s+(?:add|save|remember|note|record)\s+(?:this|that)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^(?:let's|let me)\s+(?:add|save|note|record)\s+(?:this|that)?[:\s]*(.+)`),
	regexp.MustCompile(`(?i)^don'?t\s+forget\s+(?:that\s+)?(.+)`),
	regexp.MustCompile(`(?i)^make\s+(?:a\s+)?note\s+(?:of\s+)?(?:that\s+)?(.+)`),
	regexp.MustCompile(`(?i)^jot\s+(?:this\s+)?down[:\s]*(.+)`),
}

// IntentDetector maps free-form messages onto intents using an ordered list
// of pattern rules. It is a deliberately small front end to the confirmation
// state machine and can be replaced independently of it.
type IntentDetector struct {
	remember []*regexp.Regexp
}

// NewIntentDetector returns a detector with the default rule set.
func NewIntentDetector() *IntentDetector {
	return &IntentDetector{remember: rememberPatterns}
}

// Detect classifies a user message as a command, a remember intent, or a
// plain query.
func (d *IntentDetector) Detect(message string) Utterance {
	message = strings.TrimSpace(message)

	if strings.HasPrefix(message, "/") {
		fields := strings.Fields(message)
		u := Utterance{Intent: IntentCommand, Command: strings.ToLower(fields[0])}
		if len(fields) > 1 {
			u.Args = fields[1:]
		}
		return u
	}

	for _, re := range d.remember {
		loc := re.FindStringSubmatchIndex(message)
		if loc == nil || loc[2] < 0 {
			continue
		}
		content := strings.TrimSpace(message[loc[2]:loc[3]])
		if content == "" {
			continue
		}
		u := Utterance{Intent: IntentRemember, Content: content}
		if note, marker, ok := splitExplicitMarker(content); ok {
			u.Content = note
			u.Marker = marker
		}
		return u
	}

	return Utterance{Intent: IntentQuery, Content: message}
}

// splitExplicitMarker splits remember content of the form
// "<note> in [<Marker>]" into the note and its target marker.
func splitExplicitMarker(content string) (string, Marker, bool) {
	if !strings.HasSuffix(content, "]") {
		return content, "", false
	}
	i := strings.LastIndex(content, " in [")
	if i < 0 {
		return content, "", false
	}
	note := strings.TrimSpace(content[:i])
	marker := Marker(content[i+len(" in "):])
	if note == "" {
		return content, "", false
	}
	return note, marker, true
}

package secondbrain

import "strings"

// Marker is a bracketed literal token identifying a document section, e.g.
// "[INTRODUCTION]" or "[D1:DEFINITION]". The bracket syntax is the wire
// format: markers render and parse exactly as they appear in the document.
type Marker string

// String returns the literal marker text.
func (m Marker) String() string { return string(m) }

// IsMarkerLiteral reports whether s is syntactically a bracketed marker
// token. It says nothing about taxonomy membership.
func IsMarkerLiteral(s string) bool {
	return len(s) > 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

// Category is a top-level grouping identifier a marker may belong to,
// e.g. "D1". Markers outside any category have the empty Category.
type Category string

// CategoryInfo pairs a category identifier with its human-readable name.
type CategoryInfo struct {
	ID   Category
	Name string
}

// Taxonomy is the closed set of legal section markers, built once at startup
// from the category × subsection-kind cross product plus singleton markers.
// Every marker used anywhere in the system must be a member; unknown markers
// are rejected, never silently created.
type Taxonomy struct {
	markers    []Marker
	members    map[Marker]bool
	categories []CategoryInfo
	names      map[Category]string
	byCategory map[Category][]Marker
	kinds      map[Marker]string
	category   map[Marker]Category
}

func newTaxonomy(categories []CategoryInfo) *Taxonomy {
	t := &Taxonomy{
		categories: categories,
		members:    make(map[Marker]bool),
		names:      make(map[Category]string),
		byCategory: make(map[Category][]Marker),
		kinds:      make(map[Marker]string),
		category:   make(map[Marker]Category),
	}
	for _, c := range categories {
		t.names[c.ID] = c.Name
	}
	return t
}

func (t *Taxonomy) addCategorized(c Category, kind string) {
	m := Marker("[" + string(c) + ":" + kind + "]")
	t.markers = append(t.markers, m)
	t.members[m] = true
	t.byCategory[c] = append(t.byCategory[c], m)
	t.kinds[m] = kind
	t.category[m] = c
}

func (t *Taxonomy) addBare(m Marker) {
	t.markers = append(t.markers, m)
	t.members[m] = true
	t.kinds[m] = strings.Trim(string(m), "[]")
}

// Contains reports whether m is a member of the taxonomy.
func (t *Taxonomy) Contains(m Marker) bool { return t.members[m] }

// Markers returns all markers in canonical order. Callers must not modify
// the returned slice.
func (t *Taxonomy) Markers() []Marker { return t.markers }

// Len returns the number of markers in the taxonomy.
func (t *Taxonomy) Len() int { return len(t.markers) }

// Categories returns the taxonomy's categories in canonical order.
func (t *Taxonomy) Categories() []CategoryInfo { return t.categories }

// CategoryName returns the human-readable name for a category identifier.
// Unknown categories return ok=false.
func (t *Taxonomy) CategoryName(c Category) (string, bool) {
	name, ok := t.names[c]
	return name, ok
}

// MarkersByCategory returns the categorized markers belonging to c in
// canonical order.
func (t *Taxonomy) MarkersByCategory(c Category) []Marker { return t.byCategory[c] }

// Parse splits a marker into its category and subsection kind. Bare markers
// return the empty Category and their full inner token as the kind.
// Non-member markers return ok=false.
func (t *Taxonomy) Parse(m Marker) (Category, string, bool) {
	if !t.members[m] {
		return "", "", false
	}
	return t.category[m], t.kinds[m], true
}

// MarkerList returns all markers as a single comma-separated string, for
// user-facing error messages.
func (t *Taxonomy) MarkerList() string {
	parts := make([]string, len(t.markers))
	for i, m := range t.markers {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

var defaultCategories = []CategoryInfo{
	{"D1", "Somatic/Interoceptive Regulation"},
	{"D2", "Affective/Emotion Regulation"},
	{"D3", "Cognitive Regulation/Repetitive Thought"},
	{"D4", "Meaning/Coherence/Identity Integration"},
	{"D5", "Relational Attunement/Mentalization"},
	{"D6", "Moral-Evaluative Integration"},
}

var defaultKinds = []string{
	"DEFINITION",
	"MECHANISTIC EXPLANATION",
	"ADAPTIVE FUNCTIONING",
	"MALADAPTIVE FUNCTIONING",
	"CLINICAL RELEVANCE",
	"CLINICAL EXAMPLE: MALADAPTIVE",
	"CLINICAL EXAMPLE: ADAPTIVE",
	"CROSS-DOMAIN INTERACTIONS",
	"SUMMARY TABLE",
	"REFERENCES",
}

var defaultConclusionKinds = []string{
	"INTEGRATED MECHANISTIC ARCHITECTURE",
	"CLINICAL IMPLICATIONS",
	"EVIDENCE GAPS AND FUTURE DIRECTIONS",
	"SUMMARY",
}

// DefaultTaxonomy returns the marker taxonomy of the research document
// template: an introduction, six research domains crossed with ten
// subsection kinds, four conclusion sections, and a fixed summary table.
func DefaultTaxonomy() *Taxonomy {
	t := newTaxonomy(defaultCategories)
	t.addBare("[INTRODUCTION]")
	for _, c := range defaultCategories {
		for _, kind := range defaultKinds {
			t.addCategorized(c.ID, kind)
		}
	}
	for _, kind := range defaultConclusionKinds {
		t.addBare(Marker("[CONCLUSION:" + kind + "]"))
	}
	t.addBare("[TABLE 7]")
	return t
}

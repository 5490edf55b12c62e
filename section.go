package secondbrain

import (
	"sort"
	"strings"
)

// MinSectionContent is the minimum trimmed content length for a section to
// count as having content. Shorter sections are treated as empty.
const MinSectionContent = 10

// Section is a contiguous span of document content associated with one
// marker. Category is empty for markers outside any category.
type Section struct {
	Marker   Marker   `json:"marker"`
	Category Category `json:"category,omitempty"`
	Kind     string   `json:"kind"`
	Content  string   `json:"content"`
}

// Empty reports whether the section's trimmed content is below the minimum
// content threshold.
func (s *Section) Empty() bool {
	return len(strings.TrimSpace(s.Content)) < MinSectionContent
}

// Segment splits raw document text into an ordered sequence of sections.
//
// The first occurrence of each taxonomy marker starts a section; sections
// are ordered by their position in the text, and a section's content is the
// trimmed text between its marker and the next section's marker (or end of
// text). A later literal recurrence of a marker is ordinary content. Text
// before the first recognized marker is discarded, and markers that never
// appear produce no section.
func Segment(raw string, tax *Taxonomy) []Section {
	type hit struct {
		pos    int
		marker Marker
	}

	var hits []hit
	for _, m := range tax.Markers() {
		if i := strings.Index(raw, string(m)); i >= 0 {
			hits = append(hits, hit{pos: i, marker: m})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	sections := make([]Section, 0, len(hits))
	for i, h := range hits {
		start := h.pos + len(h.marker)
		end := len(raw)
		if i+1 < len(hits) {
			end = hits[i+1].pos
		}
		category, kind, _ := tax.Parse(h.marker)
		sections = append(sections, Section{
			Marker:   h.marker,
			Category: category,
			Kind:     kind,
			Content:  strings.TrimSpace(raw[start:end]),
		})
	}
	return sections
}

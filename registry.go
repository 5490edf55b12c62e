package secondbrain

import "sync/atomic"

// Snapshot is one complete segmentation result. Snapshots are immutable once
// built and replaced wholesale on re-index, never mutated incrementally.
type Snapshot struct {
	sections   []Section
	byMarker   map[Marker]int
	byCategory map[Category][]int
}

func newSnapshot(sections []Section) *Snapshot {
	snap := &Snapshot{
		sections:   sections,
		byMarker:   make(map[Marker]int, len(sections)),
		byCategory: make(map[Category][]int),
	}
	for i, s := range sections {
		if _, ok := snap.byMarker[s.Marker]; !ok {
			snap.byMarker[s.Marker] = i
		}
		if s.Category != "" {
			snap.byCategory[s.Category] = append(snap.byCategory[s.Category], i)
		}
	}
	return snap
}

// CategoryStats summarizes section completeness within one category.
type CategoryStats struct {
	Total    int `json:"total"`
	Empty    int `json:"empty"`
	Complete int `json:"complete"`
}

// Stats summarizes document completeness across the full taxonomy.
type Stats struct {
	TotalSections    int                        `json:"totalSections"`
	CompleteSections int                        `json:"completeSections"`
	EmptySections    int                        `json:"emptySections"`
	PerCategory      map[Category]CategoryStats `json:"perCategory"`
}

// Registry is an indexed view over the current document snapshot. Reads
// always observe either the previous or the next snapshot atomically; Swap
// installs a fully built snapshot with a single pointer store.
type Registry struct {
	taxonomy *Taxonomy
	snapshot atomic.Pointer[Snapshot]
}

// NewRegistry returns a registry over the given taxonomy holding an empty
// snapshot.
func NewRegistry(tax *Taxonomy) *Registry {
	r := &Registry{taxonomy: tax}
	r.snapshot.Store(newSnapshot(nil))
	return r
}

// Taxonomy returns the registry's marker taxonomy.
func (r *Registry) Taxonomy() *Taxonomy { return r.taxonomy }

// Swap replaces the current snapshot with one built from sections.
func (r *Registry) Swap(sections []Section) {
	r.snapshot.Store(newSnapshot(sections))
}

// Sections returns the sections of the current snapshot in document order.
// Callers must not modify the returned slice.
func (r *Registry) Sections() []Section {
	return r.snapshot.Load().sections
}

// ByMarker returns the section for a marker, if the document contains it.
func (r *Registry) ByMarker(m Marker) (Section, bool) {
	snap := r.snapshot.Load()
	i, ok := snap.byMarker[m]
	if !ok {
		return Section{}, false
	}
	return snap.sections[i], true
}

// ByCategory returns the sections belonging to a category in document order.
func (r *Registry) ByCategory(c Category) []Section {
	snap := r.snapshot.Load()
	indices := snap.byCategory[c]
	sections := make([]Section, 0, len(indices))
	for _, i := range indices {
		sections = append(sections, snap.sections[i])
	}
	return sections
}

// EmptySections returns every taxonomy section whose content is below the
// minimum threshold, in taxonomy order. Markers absent from the document are
// treated as present with empty content. A non-empty category restricts the
// result to that category's markers.
func (r *Registry) EmptySections(category Category) []Section {
	snap := r.snapshot.Load()
	var empty []Section
	for _, m := range r.taxonomy.Markers() {
		sec := r.synthesize(snap, m)
		if category != "" && sec.Category != category {
			continue
		}
		if sec.Empty() {
			empty = append(empty, sec)
		}
	}
	return empty
}

// Stats computes completeness statistics over the full taxonomy from the
// current snapshot. Results are computed freshly on every call and never
// drift from the live snapshot.
func (r *Registry) Stats() Stats {
	snap := r.snapshot.Load()
	stats := Stats{
		TotalSections: r.taxonomy.Len(),
		PerCategory:   make(map[Category]CategoryStats, len(r.taxonomy.Categories())),
	}
	for _, m := range r.taxonomy.Markers() {
		sec := r.synthesize(snap, m)
		if sec.Empty() {
			stats.EmptySections++
		} else {
			stats.CompleteSections++
		}
	}
	for _, c := range r.taxonomy.Categories() {
		var cs CategoryStats
		for _, m := range r.taxonomy.MarkersByCategory(c.ID) {
			cs.Total++
			if sec := r.synthesize(snap, m); sec.Empty() {
				cs.Empty++
			} else {
				cs.Complete++
			}
		}
		stats.PerCategory[c.ID] = cs
	}
	return stats
}

// synthesize returns the snapshot's section for m, or an empty section when
// the marker is absent from the document.
func (r *Registry) synthesize(snap *Snapshot, m Marker) Section {
	if i, ok := snap.byMarker[m]; ok {
		return snap.sections[i]
	}
	category, kind, _ := r.taxonomy.Parse(m)
	return Section{Marker: m, Category: category, Kind: kind}
}

package secondbrain_test

import (
	"testing"

	"github.com/jradek/secondbrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomy(t *testing.T) {
	t.Parallel()

	t.Run("contains the full cross product plus singletons", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		// 1 introduction + 6 categories x 10 kinds + 4 conclusion + 1 table
		assert.Equal(t, 66, tax.Len())
		assert.True(t, tax.Contains("[INTRODUCTION]"))
		assert.True(t, tax.Contains("[D1:DEFINITION]"))
		assert.True(t, tax.Contains("[D6:REFERENCES]"))
		assert.True(t, tax.Contains("[CONCLUSION:SUMMARY]"))
		assert.True(t, tax.Contains("[TABLE 7]"))
	})

	t.Run("rejects markers outside the closed set", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		assert.False(t, tax.Contains("[D7:DEFINITION]"))
		assert.False(t, tax.Contains("[D1:NONSENSE]"))
		assert.False(t, tax.Contains("D1:DEFINITION"))
		assert.False(t, tax.Contains(""))
	})

	t.Run("parses categorized markers", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		category, kind, ok := tax.Parse("[D2:CLINICAL RELEVANCE]")

		require.True(t, ok)
		assert.Equal(t, secondbrain.Category("D2"), category)
		assert.Equal(t, "CLINICAL RELEVANCE", kind)
	})

	t.Run("parses bare markers with empty category", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		category, kind, ok := tax.Parse("[INTRODUCTION]")
		require.True(t, ok)
		assert.Empty(t, category)
		assert.Equal(t, "INTRODUCTION", kind)

		category, kind, ok = tax.Parse("[CONCLUSION:SUMMARY]")
		require.True(t, ok)
		assert.Empty(t, category)
		assert.Equal(t, "CONCLUSION:SUMMARY", kind)
	})

	t.Run("parse rejects non-members", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		_, _, ok := tax.Parse("[BOGUS]")

		assert.False(t, ok)
	})

	t.Run("markers round-trip through their literal form", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		for _, m := range tax.Markers() {
			assert.True(t, secondbrain.IsMarkerLiteral(m.String()))
			assert.True(t, tax.Contains(secondbrain.Marker(m.String())))
		}
	})

	t.Run("groups categorized markers by category", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		markers := tax.MarkersByCategory("D3")

		assert.Len(t, markers, 10)
		assert.Equal(t, secondbrain.Marker("[D3:DEFINITION]"), markers[0])
	})

	t.Run("exposes human-readable category names", func(t *testing.T) {
		t.Parallel()

		tax := secondbrain.DefaultTaxonomy()

		name, ok := tax.CategoryName("D1")
		require.True(t, ok)
		assert.Equal(t, "Somatic/Interoceptive Regulation", name)

		_, ok = tax.CategoryName("D9")
		assert.False(t, ok)
	})
}

func TestIsMarkerLiteral(t *testing.T) {
	t.Parallel()

	assert.True(t, secondbrain.IsMarkerLiteral("[D1:DEFINITION]"))
	assert.True(t, secondbrain.IsMarkerLiteral("[anything]"))
	assert.False(t, secondbrain.IsMarkerLiteral("yes"))
	assert.False(t, secondbrain.IsMarkerLiteral("[unclosed"))
	assert.False(t, secondbrain.IsMarkerLiteral("[]"))
}

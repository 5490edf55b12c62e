// Package secondbrain maintains a long-form structured document as a
// personal knowledge base. The document follows a fixed template of bracketed
// section markers; this package segments it into sections, tracks
// completeness, resolves safe append positions, and runs the
// classify-then-confirm workflow that routes free-form notes into the right
// section.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, chromem/).
package secondbrain

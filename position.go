package secondbrain

import "strings"

// ResolveInsertionPoint computes the character offset at which new content
// must be inserted so that it lands at the end of the target marker's
// existing section content, before the next section's marker.
//
// The boundary is the smallest starting offset of any other taxonomy marker
// that begins strictly after the target marker's text, defaulting to end of
// text. The offset is then walked backward over any run of newline and
// carriage-return characters immediately preceding the boundary, so inserted
// content groups with the section's last non-blank line instead of landing
// after its trailing blank lines.
//
// Returns ENOTFOUND if the target marker does not occur in raw. The function
// performs no mutation; applying the offset is the document backend's job.
func ResolveInsertionPoint(raw string, target Marker, tax *Taxonomy) (int, error) {
	if !tax.Contains(target) {
		return 0, Errorf(EINVALID, "Invalid marker: %s", target)
	}

	pos := strings.Index(raw, string(target))
	if pos < 0 {
		return 0, Errorf(ENOTFOUND, "Marker %s not found in document.", target)
	}
	after := pos + len(target)

	boundary := len(raw)
	for _, m := range tax.Markers() {
		if m == target {
			continue
		}
		if i := strings.Index(raw[after:], string(m)); i >= 0 && after+i < boundary {
			boundary = after + i
		}
	}

	insert := boundary
	for insert > after && (raw[insert-1] == '\n' || raw[insert-1] == '\r') {
		insert--
	}
	return insert, nil
}

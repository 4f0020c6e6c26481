package pagetext

// ignorableTags are the elements whose whole subtree is left out of the record.
var ignorableTags = map[string]bool{
	"iframe":   true,
	"noscript": true,
	"script":   true,
	"style":    true,
}

// IsIgnorable reports whether the subtree of tag is excluded from extraction.
func IsIgnorable(tag string) bool {
	return ignorableTags[tag]
}

// IgnoreMarker records the ignorable element that opened the active ignored
// subtree and the stack depth right after it was pushed.
type IgnoreMarker struct {
	Depth int
	Tag   string
}

// TagTracker tracks open elements and the active ignored subtree.
//
// Closing a tag pops every element above it as well, so a single </body>
// repairs any unclosed descendants. Stray closing tags are dropped. Only one
// ignore marker is active at a time: nested ignorable elements do not move
// it, and any unwind that pops the marked depth clears it.
type TagTracker struct {
	stack  []string
	counts map[string]int
	ignore *IgnoreMarker
}

// NewTagTracker returns an empty TagTracker.
func NewTagTracker() *TagTracker {
	return &TagTracker{counts: make(map[string]int)}
}

// Open pushes name onto the stack. It returns true if name started a new
// ignored subtree.
func (t *TagTracker) Open(name string) bool {
	t.counts[name]++
	t.stack = append(t.stack, name)
	if t.ignore == nil && IsIgnorable(name) {
		t.ignore = &IgnoreMarker{Depth: len(t.stack), Tag: name}
		return true
	}
	return false
}

// Close unwinds the stack down to and including the innermost open name and
// returns the popped tags, innermost first. It returns nil when name is not
// currently open.
func (t *TagTracker) Close(name string) []string {
	if t.counts[name] < 1 {
		return nil
	}

	var popped []string
	for len(t.stack) > 0 {
		if t.ignore != nil && t.ignore.Depth == len(t.stack) {
			t.ignore = nil
		}
		last := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.counts[last]--
		popped = append(popped, last)
		if last == name {
			break
		}
	}
	return popped
}

// Ignoring reports whether events are inside an ignored subtree.
func (t *TagTracker) Ignoring() bool {
	return t.ignore != nil
}

// Marker returns the active ignore marker. The bool result is false when no
// subtree is being ignored.
func (t *TagTracker) Marker() (IgnoreMarker, bool) {
	if t.ignore == nil {
		return IgnoreMarker{}, false
	}
	return *t.ignore, true
}

// Stack returns a copy of the open tags, outermost first.
func (t *TagTracker) Stack() []string {
	return append([]string{}, t.stack...)
}

// Counts returns a copy of the per-name open counts. Names that were opened
// and fully closed stay in the map with a count of zero.
func (t *TagTracker) Counts() map[string]int {
	counts := make(map[string]int, len(t.counts))
	for name, n := range t.counts {
		counts[name] = n
	}
	return counts
}

package ax

import "sync/atomic"

// AttributedText is a retained CFAttributedString. Its runs and attributes
// are not decoded; only the plain text is exposed.
type AttributedText struct {
	ref     Ref
	text    string
	backend Backend
	closed  atomic.Bool
}

// Text returns the plain string content.
func (t *AttributedText) Text() string {
	return t.text
}

func (t *AttributedText) String() string {
	return t.text
}

// Close releases the underlying reference. Calling it more than once is a
// no-op.
func (t *AttributedText) Close() error {
	if t.closed.CompareAndSwap(false, true) {
		t.backend.Release(t.ref)
	}
	return nil
}

func (t *AttributedText) foreign() AttributedString {
	return AttributedString{Ref: t.ref, Text: StringOf(t.text)}
}

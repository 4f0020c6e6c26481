package pagetext

import "io"

// Attributes maps attribute names to raw values. A nil value means the
// attribute was present without a value.
type Attributes map[string]*string

// Get returns the value of key. The bool result is false when the attribute
// is missing or has no value.
func (a Attributes) Get(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// EventHandler consumes tokenizer events in document order.
// Tag names are lowercase.
type EventHandler interface {
	StartTag(name string, attrs Attributes)
	EndTag(name string)
	Text(data string)
}

// Tokenizer reads HTML from r and drives h with its events.
type Tokenizer interface {
	// Tokenize returns a non-nil error only when r cannot be read or decoded.
	// Malformed markup is never an error.
	Tokenize(r io.Reader, h EventHandler) error
}

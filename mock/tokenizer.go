package mock

import (
	"io"

	"github.com/fwojciec/pagetext"
)

var _ pagetext.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is a mock implementation of pagetext.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(r io.Reader, h pagetext.EventHandler) error
}

func (t *Tokenizer) Tokenize(r io.Reader, h pagetext.EventHandler) error {
	return t.TokenizeFn(r, h)
}

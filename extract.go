package pagetext

import (
	"fmt"
	"io"
)

// Extract tokenizes r with tok into a fresh Extractor and builds the record
// for target.
func Extract(r io.Reader, tok Tokenizer, opts Options, target string) (*Record, error) {
	e := NewExtractor(opts)
	if err := tok.Tokenize(r, e); err != nil {
		return nil, fmt.Errorf("tokenizing %s: %w", target, err)
	}
	return e.Build(target), nil
}

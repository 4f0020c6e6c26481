// Package html drives pagetext event handlers from the golang.org/x/net/html
// streaming tokenizer.
package html

import (
	"errors"
	"io"

	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Ensure Tokenizer implements pagetext.Tokenizer at compile time.
var _ pagetext.Tokenizer = (*Tokenizer)(nil)

// Tokenizer streams start tag, end tag and text events without building a
// tree. Only <script> and <style> hold raw text; every other element,
// <title> and <noscript> included, has its content tokenized as markup.
type Tokenizer struct {
	strict bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStrictUTF8 controls whether input that is not valid UTF-8 fails the
// tokenization. Defaults to true.
func WithStrictUTF8(strict bool) Option {
	return func(t *Tokenizer) {
		t.strict = strict
	}
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{strict: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize reads HTML from r and sends its events to h in document order.
// A self-closing tag produces a start tag immediately followed by its end
// tag. Comments, doctypes and processing instructions are dropped.
func (t *Tokenizer) Tokenize(r io.Reader, h pagetext.EventHandler) error {
	if t.strict {
		r = transform.NewReader(r, encoding.UTF8Validator)
	}

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return readError(z.Err())
		case html.StartTagToken:
			name, attrs := tag(z)
			if !hasRawText(name) {
				z.NextIsNotRawText()
			}
			h.StartTag(name, attrs)
		case html.SelfClosingTagToken:
			name, attrs := tag(z)
			h.StartTag(name, attrs)
			h.EndTag(name)
		case html.EndTagToken:
			name, _ := z.TagName()
			h.EndTag(string(name))
		case html.TextToken:
			h.Text(string(z.Text()))
		}
	}
}

// hasRawText reports whether the content of name is character data that
// must not be tokenized.
func hasRawText(name string) bool {
	return name == "script" || name == "style"
}

// tag reads the name and attributes of the current tag token.
// A repeated attribute keeps its last value.
func tag(z *html.Tokenizer) (string, pagetext.Attributes) {
	name, hasAttr := z.TagName()
	attrs := pagetext.Attributes{}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		v := string(val)
		attrs[string(key)] = &v
	}
	return string(name), attrs
}

func readError(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, encoding.ErrInvalidUTF8):
		return pagetext.Errorf(pagetext.EINVALID, "input is not valid UTF-8")
	default:
		return err
	}
}

// Package goquery drives pagetext event handlers from a parsed DOM tree.
//
// The tree is built by golang.org/x/net/html, so the events reflect the
// HTML5 tree construction rules: implied <html>, <head> and <body> elements
// are present and misnested tags are already repaired.
package goquery

import (
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Ensure Walker implements pagetext.Tokenizer at compile time.
var _ pagetext.Tokenizer = (*Walker)(nil)

// voidElements never have an end tag in the tree walk.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Walker parses a whole document and replays it as events in document
// order. Void elements produce a start tag only, which keeps them on the
// handler's tag stack exactly like an unclosed <img> in the streaming path.
type Walker struct {
	strict bool
}

// Option configures a Walker.
type Option func(*Walker)

// WithStrictUTF8 controls whether input that is not valid UTF-8 fails the
// walk. Defaults to true.
func WithStrictUTF8(strict bool) Option {
	return func(w *Walker) {
		w.strict = strict
	}
}

// NewWalker creates a new Walker.
func NewWalker(opts ...Option) *Walker {
	w := &Walker{strict: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Tokenize parses r and sends the events of the resulting tree to h.
func (w *Walker) Tokenize(r io.Reader, h pagetext.EventHandler) error {
	if w.strict {
		r = transform.NewReader(r, encoding.UTF8Validator)
	}

	// With scripting disabled <noscript> content is parsed as markup, so the
	// handler sees its elements and can skip the whole subtree.
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return pagetext.Errorf(pagetext.EINVALID, "input is not valid UTF-8")
		}
		return err
	}

	walk(goquery.NewDocumentFromNode(root).Selection, h)
	return nil
}

func walk(sel *goquery.Selection, h pagetext.EventHandler) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch node.Type {
		case html.TextNode:
			h.Text(node.Data)
		case html.ElementNode:
			name := goquery.NodeName(child)
			h.StartTag(name, attributes(node))
			walk(child, h)
			if !voidElements[name] {
				h.EndTag(name)
			}
		}
	})
}

// attributes converts node attributes. A repeated attribute keeps its last
// value.
func attributes(node *html.Node) pagetext.Attributes {
	attrs := make(pagetext.Attributes, len(node.Attr))
	for _, a := range node.Attr {
		v := a.Val
		attrs[a.Key] = &v
	}
	return attrs
}

package pagetext

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// TitleState tracks the single-capture lifecycle of the page title.
type TitleState int

// Title states. A title moves NotSeen -> Armed on the first <title> tag and
// Armed -> Captured on the first text event or when the element closes.
const (
	TitleNotSeen TitleState = iota
	TitleArmed
	TitleCaptured
)

// Ensure Extractor implements EventHandler at compile time.
var _ EventHandler = (*Extractor)(nil)

// Extractor accumulates one page worth of tokenizer events and builds a
// Record from them. An Extractor is used for a single page and is not safe
// for concurrent use.
type Extractor struct {
	opts Options
	tags *TagTracker

	titleState TitleState
	title      string

	seenBase bool
	baseHref *string

	content strings.Builder
}

// NewExtractor returns an Extractor configured with opts.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{
		opts: opts,
		tags: NewTagTracker(),
	}
}

// StartTag handles an opening tag.
func (e *Extractor) StartTag(name string, attrs Attributes) {
	if e.tags.Open(name) || e.tags.Ignoring() {
		return
	}

	switch name {
	case "title":
		if e.titleState == TitleNotSeen {
			e.titleState = TitleArmed
		}
	case "base":
		if !e.seenBase {
			e.seenBase = true
			if href, ok := attrs.Get("href"); ok {
				e.baseHref = &href
			}
		}
	case "img":
		e.appendImage(attrs)
	}
}

// EndTag handles a closing tag. Closing a tag that is not open is a no-op.
func (e *Extractor) EndTag(name string) {
	for _, tag := range e.tags.Close(name) {
		if tag == "title" && e.titleState == TitleArmed {
			e.titleState = TitleCaptured
		}
	}
}

// Text handles a run of character data.
func (e *Extractor) Text(data string) {
	if e.tags.Ignoring() {
		return
	}
	if e.titleState == TitleArmed {
		// Only the first chunk after <title> belongs to the title.
		e.title += data
		e.titleState = TitleCaptured
		return
	}
	e.appendFragment(NormalizeSpace(data))
}

func (e *Extractor) appendImage(attrs Attributes) {
	src, hasSrc := attrs.Get("src")

	if !e.opts.ExtractTextOfImg {
		if !hasSrc {
			src = "no-src"
		} else {
			src = EscapeImageSource(src)
		}
		e.content.WriteString(" <IMG:" + src + ">")
		return
	}

	var fragment string
	if hasSrc {
		fragment = TokenizeURL(src)
	}
	fragment += " "
	if alt, ok := attrs.Get("alt"); ok {
		fragment += alt
	}
	e.appendFragment(NormalizeSpace(fragment))
}

func (e *Extractor) appendFragment(s string) {
	if s == "" {
		return
	}
	e.content.WriteByte(' ')
	e.content.WriteString(s)
}

// Title returns the raw captured title. The bool result is false if no
// <title> was seen.
func (e *Extractor) Title() (string, bool) {
	return e.title, e.titleState != TitleNotSeen
}

// TitleState returns the current state of the title capture.
func (e *Extractor) TitleState() TitleState {
	return e.titleState
}

// BaseHref returns the href of the first <base> tag. The bool result is
// false if there was no <base> tag or it had no href.
func (e *Extractor) BaseHref() (string, bool) {
	if e.baseHref == nil {
		return "", false
	}
	return *e.baseHref, true
}

// SeenBase reports whether a <base> tag has been handled.
func (e *Extractor) SeenBase() bool {
	return e.seenBase
}

// Content returns the accumulated content. Every fragment carries a leading
// space.
func (e *Extractor) Content() string {
	return e.content.String()
}

// Stack returns the currently open tags, outermost first.
func (e *Extractor) Stack() []string {
	return e.tags.Stack()
}

// Counts returns the per-name open element counts.
func (e *Extractor) Counts() map[string]int {
	return e.tags.Counts()
}

// Marker returns the active ignore marker, if any.
func (e *Extractor) Marker() (IgnoreMarker, bool) {
	return e.tags.Marker()
}

// Build assembles the record for target, the URL or file name the events
// came from. The heading, when enabled, occupies [0, headingTo) of the raw
// string. The contents range starts at headingTo+1 whether or not a heading
// was emitted, and its end is clamped so it never precedes its start.
func (e *Extractor) Build(target string) *Record {
	rec := &Record{
		Headings: [][]Range{},
		Contents: []Range{},
		Children: []*Record{},
	}

	if e.opts.ExtractURL {
		u, base := target, target
		if e.baseHref != nil && *e.baseHref != "" {
			base = *e.baseHref
		}
		rec.URL, rec.BaseURL = &u, &base
	}

	var raw strings.Builder
	headingTo := 0
	if e.opts.ExtractPageHeading {
		raw.WriteString(e.heading(target))
		headingTo = utf8.RuneCountInString(raw.String())
		rec.Headings = append(rec.Headings, []Range{{From: 0, To: headingTo, Mandatory: true}})
	}

	raw.WriteString(e.content.String())
	rec.RawString = raw.String()

	contentsTo := utf8.RuneCountInString(rec.RawString)
	rec.Contents = append(rec.Contents, Range{
		From:      headingTo + 1,
		To:        max(headingTo+1, contentsTo),
		Mandatory: true,
	})

	return rec
}

// heading returns the normalized title, or a heading derived from the base
// href and target when the page had no <title>.
func (e *Extractor) heading(target string) string {
	if e.titleState != TitleNotSeen {
		return NormalizeSpace(e.title)
	}

	merged := target
	if e.baseHref != nil {
		merged = *e.baseHref
		if strings.HasSuffix(merged, "/") {
			merged += target[strings.LastIndex(target, "/")+1:]
		}
	}
	return NormalizeSpace(TokenizeURL(merged))
}

// Dumps builds the record for target and encodes it as JSON.
func (e *Extractor) Dumps(target string) ([]byte, error) {
	return MarshalRecord(e.Build(target))
}

// MarshalRecord encodes rec as compact JSON without HTML escaping, so image
// placeholders stay readable as <IMG:...>.
func MarshalRecord(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

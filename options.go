package pagetext

// Options selects what an Extractor produces. Options are fixed for the
// lifetime of an Extractor.
type Options struct {
	// ExtractURL includes the URL and baseURL fields in the record.
	ExtractURL bool

	// ExtractPageHeading emits the page title, or a URL-derived fallback,
	// as the record heading.
	ExtractPageHeading bool

	// ExtractTextOfImg turns <img> tags into tokenized src and alt text.
	// When false, each image becomes a raw <IMG:src> placeholder.
	ExtractTextOfImg bool
}

// DefaultOptions returns options with every extraction enabled.
func DefaultOptions() Options {
	return Options{
		ExtractURL:         true,
		ExtractPageHeading: true,
		ExtractTextOfImg:   true,
	}
}

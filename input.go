package pagetext

import "context"

// Input is a single page queued for extraction.
type Input struct {
	// Name is the output name the record is stored under (e.g. "3.json").
	Name string

	// Target identifies the page in the record: a URL, or a file name for
	// local pages.
	Target string

	// Path is the local file to read. Empty means Target is fetched.
	Path string
}

// Remote reports whether the input has to be fetched.
func (in Input) Remote() bool {
	return in.Path == ""
}

// InputSource enumerates the pages of a batch.
type InputSource interface {
	Inputs(ctx context.Context) ([]Input, error)
}

package pagetext_test

import (
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Slice(t *testing.T) {
	t.Parallel()

	rec := &pagetext.Record{RawString: "héllo wörld"}

	tests := []struct {
		name string
		rng  pagetext.Range
		want string
	}{
		{"counts characters", pagetext.Range{From: 0, To: 5}, "héllo"},
		{"tail", pagetext.Range{From: 6, To: 11}, "wörld"},
		{"clamps past end", pagetext.Range{From: 6, To: 99}, "wörld"},
		{"start past end is empty", pagetext.Range{From: 12, To: 12}, ""},
		{"inverted is empty", pagetext.Range{From: 5, To: 2}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rec.Slice(tt.rng))
		})
	}
}

func TestRecord_HeadingAndContent(t *testing.T) {
	t.Parallel()

	t.Run("no heading group", func(t *testing.T) {
		t.Parallel()

		rec := &pagetext.Record{
			RawString: " body",
			Headings:  [][]pagetext.Range{},
			Contents:  []pagetext.Range{{From: 1, To: 5, Mandatory: true}},
		}

		assert.Equal(t, "", rec.Heading())
		assert.Equal(t, "body", rec.Content())
	})

	t.Run("empty record", func(t *testing.T) {
		t.Parallel()

		rec := &pagetext.Record{}

		assert.Equal(t, "", rec.Heading())
		assert.Equal(t, "", rec.Content())
	})
}

func TestMarshalRecord(t *testing.T) {
	t.Parallel()

	t.Run("field order and omitted URLs", func(t *testing.T) {
		t.Parallel()

		rec := &pagetext.Record{
			RawString: "a",
			Headings:  [][]pagetext.Range{},
			Contents:  []pagetext.Range{{From: 1, To: 1, Mandatory: true}},
			Children:  []*pagetext.Record{},
		}

		b, err := pagetext.MarshalRecord(rec)

		require.NoError(t, err)
		assert.Equal(t,
			`{"rawString":"a","headings":[],"contents":[{"from":1,"to":1,"mandatory":true}],"children":[]}`,
			string(b))
	})

	t.Run("includes URLs when set", func(t *testing.T) {
		t.Parallel()

		u := "http://x/<y>"
		rec := &pagetext.Record{URL: &u, BaseURL: &u}

		b, err := pagetext.MarshalRecord(rec)

		require.NoError(t, err)
		assert.Contains(t, string(b), `"URL":"http://x/<y>","baseURL":"http://x/<y>"`)
	})
}

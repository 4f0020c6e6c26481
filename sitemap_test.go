package pagetext_test

import (
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter matches everything", func(t *testing.T) {
		t.Parallel()

		var f *pagetext.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("include requires at least one match", func(t *testing.T) {
		t.Parallel()

		f, err := pagetext.NewURLFilter([]string{`/docs/`, `/guide/`}, nil)
		require.NoError(t, err)

		assert.True(t, f.Match("https://example.com/docs/a"))
		assert.True(t, f.Match("https://example.com/guide/b"))
		assert.False(t, f.Match("https://example.com/blog/c"))
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		t.Parallel()

		f, err := pagetext.NewURLFilter([]string{`/docs/`}, []string{`\.pdf$`})
		require.NoError(t, err)

		assert.True(t, f.Match("https://example.com/docs/a.html"))
		assert.False(t, f.Match("https://example.com/docs/a.pdf"))
	})
}

func TestNewURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without patterns", func(t *testing.T) {
		t.Parallel()

		f, err := pagetext.NewURLFilter(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := pagetext.NewURLFilter([]string{"("}, nil)
		require.Error(t, err)
		assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
	})
}

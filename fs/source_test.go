package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDirSource_Inputs(t *testing.T) {
	t.Parallel()

	t.Run("lists html files sorted with json output names", func(t *testing.T) {
		t.Parallel()

		// Given a directory with pages and other files
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "b.html"), "<p>b</p>")
		writeFile(t, filepath.Join(dir, "a.v2.html"), "<p>a</p>")
		writeFile(t, filepath.Join(dir, "notes.txt"), "skip")
		writeFile(t, filepath.Join(dir, "sub", "c.html"), "skip")

		// When I list inputs
		inputs, err := fs.NewDirSource(dir).Inputs(context.Background())

		// Then only top-level html files are returned
		require.NoError(t, err)
		assert.Equal(t, []pagetext.Input{
			{Name: "a.v2.json", Target: "a.v2.html", Path: filepath.Join(dir, "a.v2.html")},
			{Name: "b.json", Target: "b.html", Path: filepath.Join(dir, "b.html")},
		}, inputs)
		assert.False(t, inputs[0].Remote())
	})

	t.Run("empty directory has no inputs", func(t *testing.T) {
		t.Parallel()

		inputs, err := fs.NewDirSource(t.TempDir()).Inputs(context.Background())

		require.NoError(t, err)
		assert.Empty(t, inputs)
	})
}

func TestListSource_Inputs(t *testing.T) {
	t.Parallel()

	t.Run("numbers every line and trims trailing whitespace", func(t *testing.T) {
		t.Parallel()

		// Given a URL list with a blank line and CRLF endings
		path := filepath.Join(t.TempDir(), "urls.txt")
		writeFile(t, path, "http://a/one  \r\n\nhttp://a/three\n")

		// When I list inputs
		inputs, err := fs.NewListSource(path).Inputs(context.Background())

		// Then the blank line still consumes an index
		require.NoError(t, err)
		assert.Equal(t, []pagetext.Input{
			{Name: "0.json", Target: "http://a/one"},
			{Name: "1.json", Target: ""},
			{Name: "2.json", Target: "http://a/three"},
		}, inputs)
		assert.True(t, inputs[0].Remote())
	})

	t.Run("last line without newline is kept", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "urls.txt")
		writeFile(t, path, "http://x")

		inputs, err := fs.NewListSource(path).Inputs(context.Background())

		require.NoError(t, err)
		require.Len(t, inputs, 1)
		assert.Equal(t, "http://x", inputs[0].Target)
	})

	t.Run("missing list is not found", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewListSource(filepath.Join(t.TempDir(), "none.txt")).Inputs(context.Background())

		assert.Equal(t, pagetext.ENOTFOUND, pagetext.ErrorCode(err))
	})
}

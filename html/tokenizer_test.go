package html_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/pagetext/html"
	"github.com/fwojciec/pagetext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, input string) []string {
	t.Helper()
	rec := &mock.EventRecorder{}
	require.NoError(t, html.NewTokenizer().Tokenize(strings.NewReader(input), rec))
	return rec.Events
}

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("lowercases tag names", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, "<HTML><Body>")

		assert.Equal(t, []string{"<html>", "<body>"}, events)
	})

	t.Run("emits attributes and text", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, `<a HREF="/x">go &amp; see</a>`)

		assert.Equal(t, []string{"<a href=/x>", "go & see", "</a>"}, events)
	})

	t.Run("self-closing tag emits start and end", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, `<img src="a.png"/>`)

		assert.Equal(t, []string{"<img src=a.png>", "</img>"}, events)
	})

	t.Run("void tag without slash stays open", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, `<img src="a.png">`)

		assert.Equal(t, []string{"<img src=a.png>"}, events)
	})

	t.Run("noscript content is markup", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, "<noscript>b<noscript>c</noscript></noscript>")

		assert.Equal(t, []string{
			"<noscript>", "b", "<noscript>", "c", "</noscript>", "</noscript>",
		}, events)
	})

	t.Run("title content is markup", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, "<title>a<b>c</b></title>")

		assert.Equal(t, []string{"<title>", "a", "<b>", "c", "</b>", "</title>"}, events)
	})

	t.Run("script content is raw text", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, "<script>if (a<b) {}</script>")

		assert.Equal(t, []string{"<script>", "if (a<b) {}", "</script>"}, events)
	})

	t.Run("drops comments and doctype", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, "<!DOCTYPE html><!-- note --><p>x</p>")

		assert.Equal(t, []string{"<p>", "x", "</p>"}, events)
	})

	t.Run("repeated attribute keeps last value", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, `<img src="a" src="b">`)

		assert.Equal(t, []string{"<img src=b>"}, events)
	})

	t.Run("stray end tag is passed through", func(t *testing.T) {
		t.Parallel()

		events := tokenize(t, "</span>")

		assert.Equal(t, []string{"</span>"}, events)
	})
}

func TestTokenizer_InvalidUTF8(t *testing.T) {
	t.Parallel()

	t.Run("strict tokenizer rejects invalid bytes", func(t *testing.T) {
		t.Parallel()

		rec := &mock.EventRecorder{}
		err := html.NewTokenizer().Tokenize(strings.NewReader("<p>\xff\xfe</p>"), rec)

		require.Error(t, err)
	})

	t.Run("lenient tokenizer passes bytes through", func(t *testing.T) {
		t.Parallel()

		rec := &mock.EventRecorder{}
		err := html.NewTokenizer(html.WithStrictUTF8(false)).Tokenize(strings.NewReader("<p>\xff</p>"), rec)

		require.NoError(t, err)
		assert.Equal(t, []string{"<p>", "\xff", "</p>"}, rec.Events)
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestTokenizer_ReadError(t *testing.T) {
	t.Parallel()

	rec := &mock.EventRecorder{}
	err := html.NewTokenizer(html.WithStrictUTF8(false)).Tokenize(failingReader{}, rec)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagetext"
	main "github.com/fwojciec/pagetext/cmd/pagetext"
	"github.com/fwojciec/pagetext/html"
	"github.com/fwojciec/pagetext/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDeps returns dependencies writing to fresh buffers.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokenizer: html.NewTokenizer(),
	}, stdout, stderr
}

// writeFiles creates each name under dir with the given content.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"extract", "dump", "show", "list", "delete"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "extract")
}

func TestMain_Run_NoArguments(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
}

func TestMain_Run_ExtractDirectory(t *testing.T) {
	t.Parallel()

	for _, parser := range []string{"stream", "dom"} {
		t.Run(parser, func(t *testing.T) {
			t.Parallel()

			pages := t.TempDir()
			out := filepath.Join(t.TempDir(), "records")
			writeFiles(t, pages, map[string]string{
				"a.html": "<html><head><title>A</title></head><body><p>Alpha</p></body></html>",
			})

			stdout := &bytes.Buffer{}
			err := main.NewMain().Run(context.Background(),
				[]string{"extract", "--parser", parser, pages, out}, stdout, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Saved 1, skipped 0, duplicates 0, failed 0")

			data, err := os.ReadFile(filepath.Join(out, "a.json"))
			require.NoError(t, err)
			assert.JSONEq(t, `{
				"URL": "a.html",
				"baseURL": "a.html",
				"rawString": "A Alpha",
				"headings": [[{"from": 0, "to": 1, "mandatory": true}]],
				"contents": [{"from": 2, "to": 7, "mandatory": true}],
				"children": []
			}`, string(data))

			showOut := &bytes.Buffer{}
			err = main.NewMain().Run(context.Background(),
				[]string{"show", "--dir", out, "--text", "a.json"}, showOut, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, "# A\n\nAlpha\n", showOut.String())
		})
	}
}

func TestMain_Run_Database(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pages := t.TempDir()
	db := filepath.Join(t.TempDir(), "records.db")
	writeFiles(t, pages, map[string]string{
		"a.html": "<title>A</title><p>Alpha</p>",
		"b.html": "<title>B</title><p>Beta</p>",
	})

	err := main.NewMain().Run(ctx, []string{"extract", "--db", db, pages}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	listOut := &bytes.Buffer{}
	require.NoError(t, main.NewMain().Run(ctx, []string{"list", "--db", db}, listOut, &bytes.Buffer{}))
	assert.Contains(t, listOut.String(), "a.json")
	assert.Contains(t, listOut.String(), "b.json")

	showOut := &bytes.Buffer{}
	require.NoError(t, main.NewMain().Run(ctx, []string{"show", "--db", db, "b.json"}, showOut, &bytes.Buffer{}))
	assert.Contains(t, showOut.String(), `"rawString":"B Beta"`)

	delOut := &bytes.Buffer{}
	require.NoError(t, main.NewMain().Run(ctx, []string{"delete", "--db", db, "--force", "a.json"}, delOut, &bytes.Buffer{}))
	assert.Contains(t, delOut.String(), `Deleted record "a.json"`)

	err = main.NewMain().Run(ctx, []string{"show", "--db", db, "a.json"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, pagetext.ENOTFOUND, pagetext.ErrorCode(err))
}

func TestMain_Run_ExtractRequiresTarget(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), []string{"extract", t.TempDir()}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
}

func TestMain_Run_ListRequiresDatabase(t *testing.T) {
	t.Setenv("PAGETEXT_DB", "")

	err := main.NewMain().Run(context.Background(), []string{"list"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
}

func TestMain_Run_DumpURL(t *testing.T) {
	t.Parallel()

	closed := false
	m := main.NewMain()
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			assert.Equal(t, "https://docs.test/guide", url)
			return "<title>Guide</title><p>Read me</p>", nil
		},
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"dump", "--no-url", "https://docs.test/guide"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t,
		`{"rawString":"Guide Read me","headings":[[{"from":0,"to":5,"mandatory":true}]],"contents":[{"from":6,"to":13,"mandatory":true}],"children":[]}`+"\n",
		stdout.String())
}

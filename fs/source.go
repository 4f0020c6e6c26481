package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/pagetext"
)

// Ensure the sources implement pagetext.InputSource at compile time.
var (
	_ pagetext.InputSource = (*DirSource)(nil)
	_ pagetext.InputSource = (*ListSource)(nil)
)

// DirSource enumerates the *.html files directly inside a directory.
// Each file is stored as <basename>.json and identified by its file name.
type DirSource struct {
	dir string
}

// NewDirSource returns a DirSource for dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Inputs returns the HTML files of the directory sorted by file name.
func (s *DirSource) Inputs(ctx context.Context) ([]pagetext.Input, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.html"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	inputs := make([]pagetext.Input, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if fi.IsDir() {
			continue
		}

		file := filepath.Base(p)
		inputs = append(inputs, pagetext.Input{
			Name:   strings.TrimSuffix(file, filepath.Ext(file)) + ".json",
			Target: file,
			Path:   p,
		})
	}
	return inputs, nil
}

// ListSource reads a file with one URL per line. The i-th line (counting
// from zero, blank lines included) is stored as <i>.json.
type ListSource struct {
	path string
}

// NewListSource returns a ListSource reading path.
func NewListSource(path string) *ListSource {
	return &ListSource{path: path}
}

// Inputs returns one remote input per line with trailing whitespace removed.
func (s *ListSource) Inputs(ctx context.Context) ([]pagetext.Input, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pagetext.Errorf(pagetext.ENOTFOUND, "URL list not found: %s", s.path)
		}
		return nil, err
	}
	defer f.Close()

	var inputs []pagetext.Input
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; sc.Scan(); i++ {
		inputs = append(inputs, pagetext.Input{
			Name:   strconv.Itoa(i) + ".json",
			Target: strings.TrimRightFunc(sc.Text(), unicode.IsSpace),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return inputs, nil
}

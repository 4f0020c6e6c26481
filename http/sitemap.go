package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagetext"
)

// MaxSitemapDepth bounds how many levels of <sitemapindex> are followed.
const MaxSitemapDepth = 4

// Ensure SitemapService implements pagetext.SitemapService.
var _ pagetext.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from a site's sitemaps via HTTP.
// URLs are returned in sitemap order, which is the order the batch runner
// numbers its outputs in.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL's
// host, deduplicated and in first-seen order. It returns an empty slice
// when the site has no sitemap.
//
// When baseURL has a non-root path (e.g. https://example.com/docs/) only
// URLs below that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagetext.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, pagetext.Errorf(pagetext.EINVALID, "invalid base URL %q", baseURL)
	}

	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	sitemaps, err := s.locate(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{svc: s, seenMaps: map[string]bool{}, seenURLs: map[string]bool{}}
	for _, sm := range sitemaps {
		if err := w.visit(ctx, sm, 0); err != nil {
			return nil, err
		}
	}

	prefix := pathPrefix(base.Path)
	urls := []string{}
	for _, u := range w.urls {
		if prefix != "" && !underPath(u, prefix) {
			continue
		}
		if filter.Match(u) {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// sitemapWalk accumulates URLs across sitemap documents.
type sitemapWalk struct {
	svc      *SitemapService
	seenMaps map[string]bool
	seenURLs map[string]bool
	urls     []string
}

func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.seenMaps[sitemapURL] || depth > MaxSitemapDepth {
		return nil
	}
	w.seenMaps[sitemapURL] = true

	doc, err := w.svc.document(ctx, sitemapURL)
	if err != nil {
		return err
	}

	root := doc.Root()
	if root == nil {
		return fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		for _, loc := range locs(root, "sitemap") {
			if err := w.visit(ctx, loc, depth+1); err != nil {
				return err
			}
		}
	case "urlset":
		for _, loc := range locs(root, "url") {
			if !w.seenURLs[loc] {
				w.seenURLs[loc] = true
				w.urls = append(w.urls, loc)
			}
		}
	default:
		return fmt.Errorf("unexpected sitemap root <%s> at %s", root.Tag, sitemapURL)
	}
	return nil
}

// locs returns the trimmed, non-empty <loc> values of root's child entries.
func locs(root *etree.Element, entry string) []string {
	var out []string
	for _, el := range root.SelectElements(entry) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// locate finds the sitemaps declared in robots.txt, falling back to
// /sitemap.xml when robots.txt is missing or declares none.
func (s *SitemapService) locate(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if declared, err := s.robotsSitemaps(ctx, robots); err == nil && len(declared) > 0 {
		return declared, nil
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	sc := bufio.NewScanner(body)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			sitemaps = append(sitemaps, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// document fetches and parses one sitemap. Sitemaps served with a .gz
// suffix are gunzipped unless the transport already did so.
func (s *SitemapService) document(ctx context.Context, sitemapURL string) (*etree.Document, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = bufio.NewReader(body)
	if strings.HasSuffix(strings.ToLower(sitemapURL), ".gz") {
		br := r.(*bufio.Reader)
		if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
			gz, err := gzip.NewReader(br)
			if err != nil {
				return nil, fmt.Errorf("opening gzip sitemap %s: %w", sitemapURL, err)
			}
			defer gz.Close()
			r = gz
		}
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML at %s: %w", sitemapURL, err)
	}
	return doc, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	resp, err := s.do(ctx, http.MethodGet, target)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	resp, err := s.do(ctx, http.MethodHead, target)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (s *SitemapService) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	return s.client.Do(req)
}

// pathPrefix normalizes a base path for boundary-aware prefix matching:
// "/docs" and "/docs/" both become "/docs/", and the root becomes "".
func pathPrefix(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// underPath reports whether rawURL's path lies below prefix, so /docs/
// matches /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, prefix)
}

package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagesift"
)

// Ensure SitemapService implements pagesift.SitemapService.
var _ pagesift.SitemapService = (*SitemapService)(nil)

// DefaultMaxURLs caps the URLs collected from one site.
const DefaultMaxURLs = 10000

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService struct {
	client  *http.Client
	maxURLs int
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithMaxURLs caps the number of URLs returned. Values below 1 remove the
// cap.
func WithMaxURLs(n int) SitemapOption {
	return func(s *SitemapService) {
		s.maxURLs = n
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{client: client, maxURLs: DefaultMaxURLs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs returns the page URLs listed in the sitemaps of siteURL's
// host, in sitemap order and without duplicates. A siteURL with a path
// such as https://shop.example.com/chips/ scopes the result to pages
// below that path. A site without sitemaps yields an empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *pagesift.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	site, err := url.Parse(siteURL)
	if err != nil || site.Host == "" {
		return nil, pagesift.Errorf(pagesift.EINVALID, "invalid site URL: %s", siteURL)
	}
	root := &url.URL{Scheme: site.Scheme, Host: site.Host}
	scope := strings.TrimSuffix(site.Path, "/") + "/"

	queue, err := s.sitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	out := []string{}
	seenURL := make(map[string]bool)
	seenMap := make(map[string]bool)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seenMap[next] {
			continue
		}
		seenMap[next] = true

		doc, err := s.fetchXML(ctx, next)
		if err != nil {
			return nil, err
		}
		children, locs := readSitemap(doc)
		queue = append(queue, children...)

		for _, loc := range locs {
			if seenURL[loc] || !inScope(loc, scope) || !filter.Match(loc) {
				continue
			}
			seenURL[loc] = true
			out = append(out, loc)
			if s.maxURLs > 0 && len(out) >= s.maxURLs {
				return out, nil
			}
		}
	}
	return out, nil
}

// sitemaps returns the sitemaps declared in robots.txt, or /sitemap.xml
// when robots.txt declares none and that file exists.
func (s *SitemapService) sitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		declared := sitemapDirectives(body)
		body.Close()
		if len(declared) > 0 {
			return declared, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	body, err := s.get(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	body.Close()
	return []string{fallback}, nil
}

// sitemapDirectives reads the Sitemap: lines of a robots.txt file.
func sitemapDirectives(r io.Reader) []string {
	const directive = "sitemap:"
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) > len(directive) && strings.EqualFold(line[:len(directive)], directive) {
			if loc := strings.TrimSpace(line[len(directive):]); loc != "" {
				out = append(out, loc)
			}
		}
	}
	return out
}

// readSitemap splits a sitemap document into the child sitemaps of an
// index and the page URLs of a urlset.
func readSitemap(doc *etree.Document) (children, locs []string) {
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	if root.Tag == "sitemapindex" {
		return texts(root.FindElements("./sitemap/loc")), nil
	}
	return nil, texts(root.FindElements("./url/loc"))
}

func texts(elems []*etree.Element) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if t := strings.TrimSpace(e.Text()); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// inScope reports whether the path of rawURL lies below scope, which ends
// in a slash. "/chips/" matches /chips and /chips/salted but not
// /chipsets.
func inScope(rawURL, scope string) bool {
	if scope == "/" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path+"/" == scope || strings.HasPrefix(u.Path, scope)
}

func (s *SitemapService) fetchXML(ctx context.Context, sitemapURL string) (*etree.Document, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("fetching sitemap: %w", err)
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	return doc, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

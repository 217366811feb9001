package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/pagesift"
	pagesifthttp "github.com/fwojciec/pagesift/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const urlset = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/chips/classic-salted</loc></url>
  <url><loc>{{BASE}}/chips/sour-cream</loc></url>
  <url><loc>{{BASE}}/blog/new-flavours</loc></url>
  <url><loc>{{BASE}}/chips/sour-cream</loc></url>
  <url><loc>{{BASE}}/chipsets/mixed</loc></url>
</urlset>`

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("reads sitemaps declared in robots.txt", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt":       "User-agent: *\nDisallow: /cart/\nsitemap: {{BASE}}/products.xml\n",
			"/products.xml":     urlset,
			"/sitemap.xml":      `<urlset><url><loc>{{BASE}}/unused</loc></url></urlset>`,
		})

		svc := pagesifthttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/chips/classic-salted",
			srv.URL + "/chips/sour-cream",
			srv.URL + "/blog/new-flavours",
			srv.URL + "/chipsets/mixed",
		}, urls)
	})

	t.Run("falls back to sitemap.xml", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt":  "User-agent: *\n",
			"/sitemap.xml": urlset,
		})

		svc := pagesifthttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Len(t, urls, 4)
	})

	t.Run("resolves nested sitemap indexes", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-products.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-more.xml</loc></sitemap>
</sitemapindex>`,
			"/sitemap-more.xml": `<sitemapindex>
  <sitemap><loc>{{BASE}}/sitemap-blog.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-products.xml</loc></sitemap>
</sitemapindex>`,
			"/sitemap-products.xml": `<urlset><url><loc>{{BASE}}/p/1</loc></url></urlset>`,
			"/sitemap-blog.xml":     `<urlset><url><loc>{{BASE}}/blog/1</loc></url></urlset>`,
		})

		svc := pagesifthttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/p/1", srv.URL + "/blog/1"}, urls)
	})

	t.Run("scopes to the site path", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": urlset})

		svc := pagesifthttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/chips/", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/chips/classic-salted",
			srv.URL + "/chips/sour-cream",
		}, urls)
	})

	t.Run("applies include and exclude filters", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": urlset})
		filter, err := pagesift.NewURLFilter([]string{`/chips`}, []string{`sour`})
		require.NoError(t, err)

		svc := pagesifthttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/chips/classic-salted",
			srv.URL + "/chipsets/mixed",
		}, urls)
	})

	t.Run("caps the number of URLs", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": urlset})

		svc := pagesifthttp.NewSitemapService(srv.Client(), pagesifthttp.WithMaxURLs(2))
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
	})

	t.Run("site without sitemaps yields nothing", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})

		svc := pagesifthttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("missing child sitemap is an error", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/gone.xml\n",
		})

		svc := pagesifthttp.NewSitemapService(srv.Client())
		_, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("malformed sitemap is an error", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": "<urlset><<loc></urlset>"})

		svc := pagesifthttp.NewSitemapService(srv.Client())
		_, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.Error(t, err)
	})

	t.Run("invalid site URL", func(t *testing.T) {
		t.Parallel()

		svc := pagesifthttp.NewSitemapService(nil)
		_, err := svc.DiscoverURLs(context.Background(), "not a url", nil)

		assert.Equal(t, pagesift.EINVALID, pagesift.ErrorCode(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": urlset})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := pagesifthttp.NewSitemapService(srv.Client())
		_, err := svc.DiscoverURLs(ctx, srv.URL, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

// newTestServer serves path->content pairs. Content may contain {{BASE}},
// which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

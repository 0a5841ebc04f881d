package crawl

import (
	"net/url"
	"strings"
)

// resolver turns hrefs found on a page into absolute URLs.
type resolver struct {
	base *url.URL
}

func newResolver(base string) resolver {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || u.Host == "" {
		return resolver{}
	}
	return resolver{base: &url.URL{Scheme: u.Scheme, Host: u.Host}}
}

// resolve maps href as found on pageURL:
//   - "/path" becomes base origin + "/path"
//   - absolute URLs are returned unchanged
//   - anything else is resolved against pageURL
func (r resolver) resolve(pageURL, href string) string {
	switch {
	case strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//"):
		if r.base != nil {
			return r.base.String() + href
		}
	case isAbsolute(href):
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	page, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	return page.ResolveReference(ref).String()
}

func isAbsolute(href string) bool {
	u, err := url.Parse(href)
	return err == nil && u.Scheme != "" && u.Host != ""
}

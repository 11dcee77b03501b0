package feed

import (
	"encoding/xml"
	"fmt"

	"github.com/gricha/site/blog"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority"`
}

// Sitemap lists the home page, the blog index and every local post.
// External posts are left out; posts without a parseable date get no lastmod.
func Sitemap(site Site, posts []blog.Post) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS, URLs: []sitemapURL{
		{Loc: site.url("/"), Priority: "1.0"},
		{Loc: site.url("/blog"), ChangeFreq: "weekly", Priority: "0.8"},
	}}
	for i := range posts {
		post := &posts[i]
		if post.Slug == "" {
			continue
		}
		entry := sitemapURL{Loc: site.PostURL(post), Priority: "0.6"}
		if !post.Published.IsZero() {
			entry.LastMod = post.Published.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}
	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

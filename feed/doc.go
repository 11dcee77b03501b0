// Package feed renders the blog post list as RSS 2.0, Atom and JSON Feed
// documents and as a sitemap.
package feed

// Package web serves the site: the game command API used by the holiday
// terminal, the blog pages, feeds, sitemap, health and metrics endpoints.
package web

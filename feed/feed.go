package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/gricha/site/blog"
)

// Site describes the publication.
type Site struct {
	Title    string
	Author   string
	BaseURL  string
	Language string
}

func (s Site) url(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

// PostURL is the external link of a post or its page on the site.
func (s Site) PostURL(post *blog.Post) string {
	if post.IsExternal() {
		return post.External
	}
	return s.url("/blog/" + post.Slug)
}

// Build assembles the feed model shared by every format.  now stamps the
// copyright year and the feed update time.
func Build(site Site, posts []blog.Post, now time.Time) *feeds.Feed {
	home := site.url("")
	result := &feeds.Feed{
		Title:     site.Title,
		Id:        home,
		Link:      &feeds.Link{Href: home},
		Author:    &feeds.Author{Name: site.Author},
		Copyright: fmt.Sprintf("All rights reserved %d, %s", now.Year(), site.Author),
		Image:     &feeds.Image{Url: site.url("/favicon.ico"), Title: site.Title, Link: home},
		Created:   now,
		Updated:   now,
		Items:     make([]*feeds.Item, 0, len(posts)),
	}
	for i := range posts {
		post := &posts[i]
		link := site.PostURL(post)
		author := post.Author
		if author == "" {
			author = site.Author
		}
		content := post.Content
		if content == "" {
			content = post.Excerpt
		}
		result.Items = append(result.Items, &feeds.Item{
			Title:       post.Title,
			Id:          link,
			Link:        &feeds.Link{Href: link},
			Description: post.Excerpt,
			Content:     content,
			Author:      &feeds.Author{Name: author},
			Created:     post.Published,
		})
	}
	return result
}

// RSS renders an RSS 2.0 document.
func RSS(site Site, posts []blog.Post, now time.Time) (string, error) {
	feed := Build(site, posts, now)
	// content:encoded is reserved for the JSON feed
	for _, item := range feed.Items {
		item.Content = ""
	}
	return feed.ToRss()
}

// Atom renders an Atom 1.0 document.
func Atom(site Site, posts []blog.Post, now time.Time) (string, error) {
	feed := Build(site, posts, now)
	for _, item := range feed.Items {
		item.Content = ""
	}
	return feed.ToAtom()
}

// JSON renders a JSON Feed document.
func JSON(site Site, posts []blog.Post, now time.Time) (string, error) {
	return Build(site, posts, now).ToJSON()
}

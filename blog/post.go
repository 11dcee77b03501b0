package blog

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Post is a blog entry.  Local posts have a Slug; external ones an External
// URL and no slug.
type Post struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Published time.Time `json:"-"`
	Author    string    `json:"author,omitempty"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content"`
	External  string    `json:"external,omitempty"`
}

// IsExternal reports whether the post links off site.
func (p *Post) IsExternal() bool {
	return p.External != ""
}

// FrontMatter is the metadata block at the top of a post file.
type FrontMatter struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Author  string `yaml:"author"`
	Excerpt string `yaml:"excerpt"`
}

// Parse splits a post file into front matter and markdown body.  A file
// that does not open with a fence line is all body.
func Parse(slug string, data []byte) (*Post, error) {
	text := strings.ReplaceAll(strings.TrimPrefix(string(data), "\ufeff"), "\r\n", "\n")

	var meta FrontMatter
	body := text
	lines := strings.SplitAfter(text, "\n")
	if isFence(lines[0]) {
		closing := -1
		for i := 1; i < len(lines); i++ {
			if isFence(lines[i]) {
				closing = i
				break
			}
		}
		if closing == -1 {
			return nil, fmt.Errorf("post %q: unterminated front matter", slug)
		}
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:closing], "")), &meta); err != nil {
			return nil, fmt.Errorf("post %q: invalid front matter: %w", slug, err)
		}
		body = strings.Join(lines[closing+1:], "")
	}

	return &Post{
		Slug:      slug,
		Title:     meta.Title,
		Date:      meta.Date,
		Published: ParseDate(meta.Date),
		Author:    meta.Author,
		Excerpt:   meta.Excerpt,
		Content:   body,
	}, nil
}

func isFence(line string) bool {
	return strings.TrimRight(line, " \t\n") == fence
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate understands the date styles used in post front matter.  An
// unparseable date yields the zero time, which sorts after every real date.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

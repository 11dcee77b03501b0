package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gricha/site/blog"
)

var pages = template.Must(template.New("pages").Parse(`{{define "layout"}}<!DOCTYPE html>
<html lang="{{.Site.Language}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="alternate" type="application/rss+xml" title="{{.Site.Title}}" href="/rss.xml">
<link rel="alternate" type="application/atom+xml" title="{{.Site.Title}}" href="/atom.xml">
<link rel="alternate" type="application/feed+json" title="{{.Site.Title}}" href="/feed.json">
</head>
<body>
{{template "content" .}}
</body>
</html>
{{end}}`))

var indexPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "content"}}<h1>{{.Site.Title}}</h1>
<ul>
{{range .Posts}}<li>
{{if .External}}<a href="{{.External}}" rel="noopener">{{.Title}}</a>{{else}}<a href="/blog/{{.Slug}}">{{.Title}}</a>{{end}}
<time>{{.Date}}</time>
{{with .Excerpt}}<p>{{.}}</p>{{end}}
</li>
{{end}}</ul>
{{end}}`))

var postPage = template.Must(template.Must(pages.Clone()).Parse(`{{define "content"}}<article>
<h1>{{.Post.Title}}</h1>
<p><time>{{.Post.Date}}</time>{{with .Post.Author}} · {{.}}{{end}}</p>
<pre>{{.Post.Content}}</pre>
</article>
<p><a href="/blog">All posts</a></p>
{{end}}`))

type pageData struct {
	Title string
	Site  siteView
	Posts []blog.Post
	Post  *blog.Post
}

type siteView struct {
	Title    string
	Language string
}

func (s *Server) view() siteView {
	language := s.site.Language
	if language == "" {
		language = "en"
	}
	return siteView{Title: s.site.Title, Language: language}
}

func (s *Server) handleBlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := s.allPosts(r)
	if err != nil {
		s.logger.Error(err, "failed to list posts")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.render(w, indexPage, pageData{Title: s.site.Title, Site: s.view(), Posts: posts})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if s.posts == nil {
		http.NotFound(w, r)
		return
	}
	post, err := s.posts.BySlug(r.Context(), slug)
	if errors.Is(err, blog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error(err, "failed to load post", "slug", slug)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.render(w, postPage, pageData{Title: post.Title + " | " + s.site.Title, Site: s.view(), Post: post})
}

func (s *Server) render(w http.ResponseWriter, page *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error(err, "failed to render page")
	}
}

func (s *Server) allPosts(r *http.Request) ([]blog.Post, error) {
	if s.posts == nil {
		return []blog.Post{}, nil
	}
	return s.posts.All(r.Context())
}

package web

import (
	"net/http"

	"github.com/gricha/site/blog"
	"github.com/gricha/site/feed"
)

const cacheControl = "public, max-age=3600"

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/xml; charset=utf-8", func(posts []blog.Post) ([]byte, error) {
		out, err := feed.RSS(s.site, posts, s.now())
		return []byte(out), err
	})
}

func (s *Server) handleAtom(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/atom+xml; charset=utf-8", func(posts []blog.Post) ([]byte, error) {
		out, err := feed.Atom(s.site, posts, s.now())
		return []byte(out), err
	})
}

func (s *Server) handleJSONFeed(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/json; charset=utf-8", func(posts []blog.Post) ([]byte, error) {
		out, err := feed.JSON(s.site, posts, s.now())
		return []byte(out), err
	})
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, "application/xml; charset=utf-8", func(posts []blog.Post) ([]byte, error) {
		return feed.Sitemap(s.site, posts)
	})
}

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request, contentType string, render func([]blog.Post) ([]byte, error)) {
	posts, err := s.allPosts(r)
	if err != nil {
		s.logger.Error(err, "failed to list posts", "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data, err := render(posts)
	if err != nil {
		s.logger.Error(err, "failed to render feed", "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	_, _ = w.Write(data)
}

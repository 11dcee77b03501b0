package blog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

const postExt = ".md"

// ErrNotFound is returned for an unknown slug.
var ErrNotFound = errors.New("post not found")

// Store reads posts from a directory addressed by an afs URL.
type Store struct {
	location string
	external []Post
	fs       afs.Service
	logger   logr.Logger
}

type Option func(*Store)

// WithExternal adds posts published on other sites.
func WithExternal(posts ...Post) Option {
	return func(s *Store) { s.external = append(s.external, posts...) }
}

func WithFS(fs afs.Service) Option {
	return func(s *Store) { s.fs = fs }
}

func WithLogger(logger logr.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store over location: a local directory or any URL the
// afs service understands.
func NewStore(location string, opts ...Option) *Store {
	s := &Store{location: location, logger: logr.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	return s
}

// Location returns the posts directory URL.
func (s *Store) Location() string {
	return s.location
}

// All returns every local and external post, newest first.
func (s *Store) All(ctx context.Context) ([]Post, error) {
	local, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(local)+len(s.external))
	posts = append(posts, local...)
	for _, post := range s.external {
		post.Slug = ""
		post.Published = ParseDate(post.Date)
		posts = append(posts, post)
	}
	Sort(posts)
	return posts, nil
}

// BySlug returns the local post with slug.
func (s *Store) BySlug(ctx context.Context, slug string) (*Post, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// Sort orders posts newest first; posts with equal dates keep their order.
func Sort(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Published.After(posts[j].Published)
	})
}

func (s *Store) load(ctx context.Context) ([]Post, error) {
	objects, err := s.fs.List(ctx, s.location)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts in %q: %w", s.location, err)
	}
	posts := make([]Post, 0, len(objects))
	for _, object := range objects {
		if !isPost(object) {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read post %q: %w", object.URL(), err)
		}
		slug := strings.TrimSuffix(object.Name(), postExt)
		post, err := Parse(slug, data)
		if err != nil {
			s.logger.Error(err, "skipping post", "url", object.URL())
			continue
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

func isPost(object storage.Object) bool {
	return !object.IsDir() && path.Ext(object.Name()) == postExt
}

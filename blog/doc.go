// Package blog loads blog posts written as markdown files with a YAML front
// matter block, merges them with posts published elsewhere and orders them
// newest first.
package blog

// Package cmd implements the sub-commands of the site command-line
// interface.  Each file registers a single sub-command (serve, play, exec,
// list-tools, …).  Plumbing shared between commands such as configuration
// loading and client construction lives in shared.go.
package cmd

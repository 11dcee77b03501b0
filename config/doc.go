// Package config defines the YAML configuration model of the site server
// together with helpers to load it from any afs-supported location, overlay
// environment variables and validate the result.
package config

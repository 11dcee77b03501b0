// Package matcher implements the name patterns used to restrict which
// remote tools are offered to the intent resolver.
package matcher

// Package conv holds small value helpers shared across packages: pointer
// (de)referencing and JSON pretty printing for tool results.
package conv

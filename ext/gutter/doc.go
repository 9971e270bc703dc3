// Package gutter provides line-number, breakpoint, and empty-line gutters.
package gutter

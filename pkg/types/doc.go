// Package types defines the core data structures shared across relink:
// the link entry model, the filesystem abstraction, the reporter
// capability, and run results.
package types

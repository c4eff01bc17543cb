// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Fadeshow is the canonical application identifier used for filesystem paths and CLI branding.
	Fadeshow = "fadeshow"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent identifies the application on update-check requests.
	UserAgent = Fadeshow + "/" + Version
)

// Build metadata, overridden at link time by the release pipeline.
var (
	Revision = "unknown"
	BuiltAt  = ""
	BuiltBy  = "unknown"
)

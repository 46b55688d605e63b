// Package redact provides utilities for redacting sensitive information
// from strings before they are logged. This prevents accidental leakage
// of credentials, connection strings, and tokens through error messages.
package redact

import "regexp"

// Placeholder inserted wherever sensitive content is detected.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled redaction patterns.
var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`)

	// Credentials and tokens in key=value or key: value form
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(`(?i)(api[_-]?key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// JWT tokens: three base64url segments starting with eyJ
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	patterns = []*regexp.Regexp{
		dbConnRegex,
		passwordRegex,
		apiKeyRegex,
		jwtTokenRegex,
	}
)

// String returns s with all recognized sensitive fragments replaced by
// the redaction placeholder.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error returns the redacted message of err, or an empty string for a
// nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Package redact scrubs credentials, tokens, password hashes and SQL text from
// strings before they are logged.
package redact

import "regexp"

const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres(?:ql)?|mysql)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(jwt_secret|secret|api[_-]?key)\s*[=:]\s*['"]?[^'"&\s]+`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`),
		RedactedHashPlaceholder,
	},
	{
		// Upper-case keywords only, so ordinary messages like "failed to update user" survive.
		regexp.MustCompile(`\b(SELECT|INSERT INTO|UPDATE|DELETE FROM)\s[^;]*`),
		RedactedSQLPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

package utils

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from user-supplied text fields such as
// display names, keeping them safe to echo back into any client.
func SanitizeText(input string) string {
	return strict.Sanitize(input)
}

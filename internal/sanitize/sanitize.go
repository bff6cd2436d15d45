// Package sanitize neutralizes user-supplied free text before it is served.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element. The contents of script and style elements are
// dropped along with their tags.
var strict = bluemonday.StrictPolicy()

// angles re-escapes the only characters that could open markup once the
// policy's entity escaping has been undone.
var angles = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Text strips executable markup from s. Every other character, quotes and
// ampersands included, comes back as it was written.
func Text(s string) string {
	return angles.Replace(html.UnescapeString(strict.Sanitize(s)))
}

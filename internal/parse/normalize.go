package parse

import (
	"regexp"
	"strings"
)

var (
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	gluedHeading = regexp.MustCompile(`([^\n#])(#{1,6} )`)
)

// Normalize cleans a string destined for display. Model output frequently
// arrives double-escaped, so doubled escape sequences are unescaped before
// single ones. The transform is idempotent: Normalize(Normalize(s)) ==
// Normalize(s).
func Normalize(s string) string {
	// Doubled escapes first, then single.
	s = strings.ReplaceAll(s, `\\n`, "\n")
	s = strings.ReplaceAll(s, `\\t`, "\t")
	s = strings.ReplaceAll(s, `\\r`, "\r")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\r`, "\r")

	// Collapse runs of blank lines.
	s = blankRuns.ReplaceAllString(s, "\n\n")

	// Strip one layer of wrapping quotes. Skipped when the inner text is
	// itself quote-delimited, otherwise repeated application would keep
	// peeling layers and idempotence would break.
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if !strings.HasPrefix(inner, `"`) && !strings.HasSuffix(inner, `"`) {
			s = inner
		}
	}

	// A heading marker glued to preceding text never renders as a heading;
	// give it its own line.
	s = gluedHeading.ReplaceAllString(s, "$1\n$2")

	return s
}

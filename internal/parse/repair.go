package parse

import (
	"strings"

	"pminsight/internal/schema"
)

// scanState enumerates the scanner states used for quote and brace
// balancing. The scanner is the single source of truth for "are we inside a
// string", which keeps the repair heuristics auditable.
type scanState int

const (
	scanNormal scanState = iota
	scanInString
	scanEscape
)

// scan runs the state machine over text and returns the final state plus the
// count of unmatched top-level opening braces seen outside strings.
func scan(text string) (state scanState, opens, closes int) {
	for _, r := range text {
		switch state {
		case scanEscape:
			state = scanInString
		case scanInString:
			switch r {
			case '\\':
				state = scanEscape
			case '"':
				state = scanNormal
			}
		default:
			switch r {
			case '"':
				state = scanInString
			case '{':
				opens++
			case '}':
				closes++
			}
		}
	}
	return state, opens, closes
}

// LooksTruncated reports whether text ends inside an unterminated string or
// with unbalanced braces, the signature of output cut off by the model's
// length cap.
func LooksTruncated(text string) bool {
	state, opens, closes := scan(text)
	return state != scanNormal || opens != closes
}

// Repair rewrites truncated JSON text into a syntactically valid object.
//
// This is a bounded heuristic, not general JSON recovery: it closes an
// unterminated final string, drops a trailing comma, balances top-level
// braces, drops a field whose value never started, and injects placeholder
// entries for missing contract fields. Corruption in the middle of the text (stray quotes inside values,
// unbalanced nested arrays) is out of scope and falls through to the text
// fallback when the repaired output still fails to decode.
func Repair(text string, contract schema.Contract) string {
	s := strings.TrimSpace(text)

	// Nothing usable arrived.
	if s == "" || s == "{" {
		return placeholderObject(contract)
	}

	// A trailing colon means the last field's value never started. Cut back
	// to the last complete comma-terminated field, or to an empty object if
	// the truncated field was the first.
	if strings.HasSuffix(s, ":") {
		if i := strings.LastIndex(s, ","); i >= 0 {
			s = strings.TrimSpace(s[:i+1])
		} else {
			s = "{"
		}
	}

	state, opens, closes := scan(s)

	// Close a string the model never terminated. A dangling escape would
	// swallow the closing quote, so drop it first.
	if state != scanNormal {
		if state == scanEscape {
			s = strings.TrimSuffix(s, "\\")
		}
		s += `"`
	}

	// A trailing comma means truncation hit between fields; drop it before
	// closing braces so the complete fields still decode.
	s = strings.TrimRight(s, " \t\r\n")
	s = strings.TrimSuffix(s, ",")

	if opens > closes {
		s += strings.Repeat("}", opens-closes)
	}

	// Inject placeholder entries for contract fields that never arrived.
	// Presence is a substring check on the quoted field name; false
	// positives (the name appearing inside a value) just mean the validator
	// fills the field later instead.
	var missing []string
	for _, name := range contract.Names() {
		if !strings.Contains(s, `"`+name+`"`) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		s = strings.TrimRight(s, " \t\r\n")
		s = strings.TrimRight(s, "}")
		s = strings.TrimRight(s, " \t\r\n,")
		var b strings.Builder
		b.WriteString(s)
		if !strings.HasSuffix(s, "{") {
			b.WriteString(",")
		}
		for i, name := range missing {
			b.WriteString("\n    \"")
			b.WriteString(name)
			b.WriteString(`": "`)
			b.WriteString(schema.PlaceholderTruncated)
			b.WriteString(`"`)
			if i < len(missing)-1 {
				b.WriteString(",")
			}
		}
		b.WriteString("\n}")
		s = b.String()
	}

	// Guarantee a single closing brace at the end.
	if !strings.HasSuffix(strings.TrimRight(s, " \t\r\n"), "}") {
		s = strings.TrimRight(s, " \t\r\n,")
		s += "\n}"
	}

	return s
}

func placeholderObject(contract schema.Contract) string {
	names := contract.Names()
	var b strings.Builder
	b.WriteString("{")
	for i, name := range names {
		b.WriteString("\n    \"")
		b.WriteString(name)
		b.WriteString(`": "`)
		b.WriteString(schema.PlaceholderTruncated)
		b.WriteString(`"`)
		if i < len(names)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString("\n}")
	return b.String()
}

package parse

import (
	"strings"
	"unicode/utf8"

	"pminsight/internal/schema"
)

// extractWindow is how many characters of text each fallback-extracted
// field receives.
const extractWindow = 500

// Extract recovers a field→text mapping from raw output when JSON recovery
// is hopeless. It works on the original raw text, pre fence-stripping.
//
// First pass is keyword-anchored: each contract field is matched against its
// synonym keywords (case-insensitive) and, on first hit, takes a fixed
// window of text starting at the match. If no field matched anywhere, the
// raw text is sliced into consecutive windows assigned in contract order.
// The result is always total: every contract field gets a non-empty value.
func Extract(raw string, contract schema.Contract) map[string]string {
	result := make(map[string]string, contract.Len())
	lower := strings.ToLower(raw)

	matched := false
	for i := 0; i < contract.Len(); i++ {
		field := contract.At(i)
		for _, keyword := range field.Synonyms {
			idx := strings.Index(lower, strings.ToLower(keyword))
			if idx < 0 {
				continue
			}
			result[field.Name] = window(raw, idx)
			matched = true
			break
		}
	}

	if matched {
		// Fields without a keyword hit still need content.
		for _, name := range contract.Names() {
			if result[name] == "" {
				result[name] = schema.PlaceholderOverflow
			}
		}
		return result
	}

	// Positional slicing: consecutive character windows in contract order.
	runes := []rune(raw)
	for i, name := range contract.Names() {
		start := i * extractWindow
		if start >= len(runes) {
			result[name] = schema.PlaceholderOverflow
			continue
		}
		end := start + extractWindow
		if end > len(runes) {
			end = len(runes)
		}
		result[name] = string(runes[start:end])
	}
	return result
}

// window returns up to extractWindow characters starting at byte offset
// start, snapped forward to a rune boundary.
func window(raw string, start int) string {
	for start < len(raw) && isContinuationByte(raw[start]) {
		start++
	}
	end := start
	for n := 0; n < extractWindow && end < len(raw); n++ {
		_, size := utf8.DecodeRuneInString(raw[end:])
		end += size
	}
	s := raw[start:end]
	if s == "" {
		return schema.PlaceholderOverflow
	}
	return s
}

func isContinuationByte(b byte) bool { return b&0xC0 == 0x80 }

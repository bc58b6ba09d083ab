package parse

import "strings"

// Resolve coerces a decoded Value into its renderable shape. The model is
// asked for plain strings but routinely returns lists of strings or lists of
// objects (e.g. [{"strategy": ..., "description": ...}]); resolution
// flattens all of those once, at the boundary, so downstream code never
// inspects shapes again.
func Resolve(v Value) Renderable {
	switch v.Kind() {
	case KindText:
		return RenderText(Normalize(v.String()))
	case KindList:
		items := make([]string, 0, len(v.Items()))
		for _, item := range v.Items() {
			items = append(items, resolveItem(item))
		}
		return RenderList(items)
	case KindObject:
		// A whole field arriving as an object never happens for a
		// schema-valid response; dump it legibly rather than dropping it.
		return RenderText(dumpObject(v, 0))
	}
	return RenderText("")
}

// resolveItem flattens one list element to a single display string.
func resolveItem(v Value) string {
	switch v.Kind() {
	case KindText:
		return Normalize(v.String())
	case KindObject:
		return flattenObjectItem(v)
	case KindList:
		// Nested lists are an unrecoverable shape; treat as opaque text.
		parts := make([]string, 0, len(v.Items()))
		for _, item := range v.Items() {
			parts = append(parts, resolveItem(item))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// flattenObjectItem renders an object-shaped list element as "label: body"
// using its first two values in insertion order. Any emphasis the model
// already put in is stripped, then one consistent marker is applied to the
// label portion.
func flattenObjectItem(v Value) string {
	members := v.Members()
	if len(members) == 0 {
		return ""
	}

	first := asText(members[0].Val)
	if len(members) == 1 {
		return emphasizeLabel(stripEmphasis(Normalize(first)))
	}
	second := asText(members[1].Val)
	flat := stripEmphasis(Normalize(first + ": " + second))
	return emphasizeLabel(flat)
}

// asText folds any value into a plain string for flattening.
func asText(v Value) string {
	switch v.Kind() {
	case KindText:
		return v.String()
	case KindList:
		parts := make([]string, 0, len(v.Items()))
		for _, item := range v.Items() {
			parts = append(parts, asText(item))
		}
		return strings.Join(parts, "; ")
	case KindObject:
		parts := make([]string, 0, len(v.Members()))
		for _, m := range v.Members() {
			parts = append(parts, m.Key+": "+asText(m.Val))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return s
}

// emphasizeLabel bolds the portion preceding the first colon. Strings
// without a colon are left unmarked.
func emphasizeLabel(s string) string {
	i := strings.Index(s, ":")
	if i <= 0 {
		return s
	}
	return "**" + s[:i] + "**:" + s[i+1:]
}

// dumpObject renders nested key/value pairs as an indented block. Last
// resort display path only.
func dumpObject(v Value, depth int) string {
	indent := strings.Repeat("  ", depth)
	var b strings.Builder
	for i, m := range v.Members() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString(m.Key)
		b.WriteString(":")
		switch m.Val.Kind() {
		case KindObject:
			b.WriteString("\n")
			b.WriteString(dumpObject(m.Val, depth+1))
		default:
			b.WriteString(" ")
			b.WriteString(Normalize(asText(m.Val)))
		}
	}
	return b.String()
}

// Package report turns analysis records into markdown and terminal output.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"pminsight/internal/history"
	"pminsight/internal/parse"
	"pminsight/internal/schema"
)

// Sections flattens a record into display sections in contract order. Extra
// fields the model returned are dropped; reports only carry the contract.
func Sections(rec *parse.Record, contract schema.Contract) []history.Section {
	sections := make([]history.Section, 0, contract.Len())
	for i := 0; i < contract.Len(); i++ {
		field := contract.At(i)
		v, ok := rec.Get(field.Name)
		if !ok {
			continue
		}
		sec := history.Section{Field: field.Name, Title: field.Title}
		if v.IsList() {
			sec.Items = v.Items()
		} else {
			sec.Content = v.Text()
		}
		sections = append(sections, sec)
	}
	return sections
}

// Markdown renders a full analysis report. List sections become numbered
// entries separated by rules, matching how multi-strategy advice reads best.
func Markdown(product string, createdAt time.Time, sections []history.Section) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Competitive Analysis: %s\n\n", product)
	fmt.Fprintf(&sb, "_Generated %s_\n\n", createdAt.Format("2006-01-02 15:04"))

	for _, sec := range sections {
		fmt.Fprintf(&sb, "## %s\n\n", sec.Title)
		if len(sec.Items) > 0 {
			for i, item := range sec.Items {
				fmt.Fprintf(&sb, "### %d.\n\n%s\n", i+1, item)
				if i < len(sec.Items)-1 {
					sb.WriteString("\n---\n\n")
				}
			}
			sb.WriteString("\n")
		} else {
			fmt.Fprintf(&sb, "%s\n\n", sec.Content)
		}
	}

	return sb.String()
}

// RenderTerminal renders markdown for terminal display. Glamour failures of
// any kind fall back to the plain markdown.
func RenderTerminal(markdown string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = markdown
		}
	}()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil || renderer == nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// Filename derives a safe export filename from a product name.
func Filename(product string, createdAt time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_', r == '.':
			return '-'
		default:
			return -1
		}
	}, strings.TrimSpace(product))
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if slug == "" {
		slug = "analysis"
	}
	return fmt.Sprintf("%s-%s.md", slug, createdAt.Format("20060102-150405"))
}

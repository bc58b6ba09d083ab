package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pminsight/internal/history"
	"pminsight/internal/parse"
	"pminsight/internal/schema"
)

func testContract(t *testing.T) schema.Contract {
	t.Helper()
	c, err := schema.New(
		schema.Field{Name: "model_stack", Title: "Model Stack"},
		schema.Field{Name: "strategy_advice", Title: "Strategic Advice"},
	)
	require.NoError(t, err)
	return c
}

func TestSections(t *testing.T) {
	rec := parse.NewRecord()
	rec.Set("model_stack", parse.RenderText("Built on GPT-4."))
	rec.Set("strategy_advice", parse.RenderList([]string{"Go vertical", "Undercut pricing"}))
	rec.Set("bonus", parse.RenderText("dropped"))

	sections := Sections(rec, testContract(t))
	require.Len(t, sections, 2)

	assert.Equal(t, "Model Stack", sections[0].Title)
	assert.Equal(t, "Built on GPT-4.", sections[0].Content)
	assert.Empty(t, sections[0].Items)

	assert.Equal(t, "Strategic Advice", sections[1].Title)
	assert.Equal(t, []string{"Go vertical", "Undercut pricing"}, sections[1].Items)
}

func TestSections_ContractOrder(t *testing.T) {
	rec := parse.NewRecord()
	// Inserted in reverse of contract order.
	rec.Set("strategy_advice", parse.RenderText("advice"))
	rec.Set("model_stack", parse.RenderText("stack"))

	sections := Sections(rec, testContract(t))
	require.Len(t, sections, 2)
	assert.Equal(t, "model_stack", sections[0].Field)
	assert.Equal(t, "strategy_advice", sections[1].Field)
}

func TestMarkdown(t *testing.T) {
	created := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	md := Markdown("Notion AI", created, []history.Section{
		{Field: "model_stack", Title: "Model Stack", Content: "Built on GPT-4."},
		{Field: "strategy_advice", Title: "Strategic Advice", Items: []string{"Go vertical", "Undercut pricing"}},
	})

	assert.Contains(t, md, "# Competitive Analysis: Notion AI")
	assert.Contains(t, md, "_Generated 2026-08-31 10:30_")
	assert.Contains(t, md, "## Model Stack")
	assert.Contains(t, md, "Built on GPT-4.")
	assert.Contains(t, md, "### 1.")
	assert.Contains(t, md, "### 2.")
	// Separator between list entries, not after the last one.
	assert.Equal(t, 1, strings.Count(md, "---"))
}

func TestRenderTerminal_FallsBackToPlain(t *testing.T) {
	md := "# Title\n\nbody"
	got := RenderTerminal(md)
	// Whether glamour styled it or not, the content survives.
	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "body")
}

func TestFilename(t *testing.T) {
	created := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		product string
		prefix  string
	}{
		{"Notion AI", "notion-ai-"},
		{"  GitHub Copilot!  ", "github-copilot-"},
		{"产品", "analysis-"},
		{"a//b", "ab-"},
	}
	for _, tc := range cases {
		got := Filename(tc.product, created)
		assert.True(t, strings.HasPrefix(got, tc.prefix), "Filename(%q) = %q", tc.product, got)
		assert.True(t, strings.HasSuffix(got, ".md"), got)
	}
}

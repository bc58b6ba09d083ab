package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pminsight/internal/parse"
	"pminsight/internal/schema"
)

type stubClient struct {
	response string
	err      error
	prompt   string
	system   string
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteWithSystem(ctx, "", prompt)
}

func (s *stubClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.system = systemPrompt
	s.prompt = userPrompt
	return s.response, s.err
}

type stubContext struct{ block string }

func (s stubContext) Context(ctx context.Context, product string) string { return s.block }

const wellFormed = `{
	"model_stack": "Built on GPT-4.",
	"scene_fit": "Note taking.",
	"data_moat": "Workspace content.",
	"ux_friction": "Slash-command discoverability.",
	"commercial_roi": "$10/seat add-on.",
	"strategy_advice": "Go deep on a vertical."
}`

func TestAnalyze_WellFormed(t *testing.T) {
	client := &stubClient{response: wellFormed}
	a := New(client, nil, nil)

	got, err := a.Analyze(context.Background(), "Notion AI")
	require.NoError(t, err)

	assert.Equal(t, "Notion AI", got.Product)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, parse.PathStrict, got.Path)
	assert.False(t, got.Degraded)

	v, ok := got.Record.Get("model_stack")
	require.True(t, ok)
	assert.Equal(t, "Built on GPT-4.", v.Text())
}

func TestAnalyze_PromptCarriesProductAndContract(t *testing.T) {
	client := &stubClient{response: wellFormed}
	a := New(client, nil, nil)

	_, err := a.Analyze(context.Background(), "Notion AI")
	require.NoError(t, err)

	assert.Contains(t, client.prompt, "**Product:** Notion AI")
	for _, name := range schema.Current().Names() {
		assert.Contains(t, client.prompt, `"`+name+`"`)
	}
	assert.Contains(t, client.system, "competitive analysis")
}

func TestAnalyze_SearchContextInPrompt(t *testing.T) {
	client := &stubClient{response: wellFormed}
	a := New(client, stubContext{block: "Recent web context:\n1. A review"}, nil)

	_, err := a.Analyze(context.Background(), "Notion AI")
	require.NoError(t, err)
	assert.Contains(t, client.prompt, "Recent web context:")
}

func TestAnalyze_TruncatedResponseDegrades(t *testing.T) {
	client := &stubClient{response: `{"model_stack": "Built on GPT-4.", "scene_fit":`}
	a := New(client, nil, nil)

	got, err := a.Analyze(context.Background(), "Notion AI")
	require.NoError(t, err)

	assert.True(t, got.Degraded)
	assert.Equal(t, parse.PathRepaired, got.Path)
	for _, name := range schema.Current().Names() {
		v, ok := got.Record.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, v.Text(), name)
	}
}

func TestAnalyze_GarbageResponseStillCompletes(t *testing.T) {
	client := &stubClient{response: "The model stack relies on fine-tuned Llama variants."}
	a := New(client, nil, nil)

	got, err := a.Analyze(context.Background(), "SomeProduct")
	require.NoError(t, err)

	assert.True(t, got.Degraded)
	assert.Equal(t, parse.PathFallback, got.Path)
	v, _ := got.Record.Get("model_stack")
	assert.True(t, strings.Contains(v.Text(), "model stack"), "keyword extraction should anchor on the phrase")
}

func TestAnalyze_ClientError(t *testing.T) {
	client := &stubClient{err: errors.New("network down")}
	a := New(client, nil, nil)

	_, err := a.Analyze(context.Background(), "Notion AI")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
}

func TestAnalyze_EmptyProduct(t *testing.T) {
	a := New(&stubClient{}, nil, nil)
	_, err := a.Analyze(context.Background(), "   ")
	assert.Error(t, err)
}

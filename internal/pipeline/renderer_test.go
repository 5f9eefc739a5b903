package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veracity/internal/model"
)

func sampleResult() *model.Result {
	return &model.Result{
		Query:         "What are the benefits of buying a house?",
		URL:           "https://www.investopedia.com/buying-a-house",
		SubScores:     model.SubScores{DomainTrust: 60, Relevance: 35, FactCheck: 70, Bias: 30, Citation: 50},
		ValidityScore: 50.5,
		Stars:         model.StarRating{Score: 3, Icon: "⭐⭐⭐"},
		Explanation:   "The content is not highly relevant to your query. Potential bias detected in the content.",
		Signals: []model.Signal{
			{Dimension: model.DimensionDomainTrust, Score: 60, Weight: 0.3, Defaulted: true, Detail: "no authority rule for example.com"},
			{Dimension: model.DimensionRelevance, Score: 35, Weight: 0.3, Detail: "lexical"},
			{Dimension: model.DimensionFactCheck, Score: 70, Weight: 0.2, Detail: "a | b"},
			{Dimension: model.DimensionBias, Score: 30, Weight: 0.1, Detail: "lexical: NEGATIVE"},
			{Dimension: model.DimensionCitation, Score: 50, Weight: 0.1, Detail: "5 references"},
		},
		Source:      model.PageContent{OK: true, Text: "secret page text", StatusCode: 200, TextLength: 16},
		EvaluatedAt: fixedClock(),
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatJSON,
		"JSON":     FormatJSON,
		"yml":      FormatYAML,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"legacy":   FormatLegacy,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	for _, key := range []string{"query", "url", "sub_scores", "validity_score", "stars", "explanation", "signals", "source", "evaluated_at"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, 50.5, decoded["validity_score"])
	assert.Equal(t, map[string]any{"score": float64(3), "icon": "⭐⭐⭐"}, decoded["stars"])
	assert.NotContains(t, buf.String(), "secret page text", "page text is not serialized")
}

func TestRender_Legacy(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), FormatLegacy))

	var decoded model.LegacyReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, map[string]float64{
		"Domain Trust":         60,
		"Content Relevance":    35,
		"Fact-Check Score":     70,
		"Bias Score":           30,
		"Citation Score":       50,
		"Final Validity Score": 50.5,
	}, decoded.RawScore)
	assert.Equal(t, 3, decoded.Stars.Score)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), FormatYAML))

	var decoded struct {
		ValidityScore float64         `yaml:"validity_score"`
		SubScores     model.SubScores `yaml:"sub_scores"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 50.5, decoded.ValidityScore)
	assert.Equal(t, 35.0, decoded.SubScores.Relevance)
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(), FormatMarkdown))
	md := buf.String()

	assert.Contains(t, md, "**Validity:** 50.50 / 100 ⭐⭐⭐ (3/5)")
	assert.Contains(t, md, "| Domain Trust | 60.00 | 0.30 | default: no authority rule for example.com |")
	assert.Contains(t, md, `| Fact-Check Score | 70.00 | 0.20 | a \| b |`)
	assert.Contains(t, md, "- Fetched: HTTP 200, 16 characters of paragraph text")
}

func TestRenderMarkdown_FetchFailure(t *testing.T) {
	r := sampleResult()
	r.Source = model.FetchFailure("unexpected status: 404 404 Not Found")

	assert.Contains(t, RenderMarkdown(r), "- Fetch failed: unexpected status: 404 404 Not Found")
}

func TestWriteResult(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		var stdout bytes.Buffer
		require.NoError(t, WriteResult(sampleResult(), FormatJSON, "", &stdout))
		assert.True(t, strings.HasPrefix(stdout.String(), "{"))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "result.md")
		var stdout bytes.Buffer
		require.NoError(t, WriteResult(sampleResult(), FormatMarkdown, path, &stdout))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Source Credibility Report")
		assert.Empty(t, stdout.String())
	})
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, sampleResult())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "⭐⭐⭐ 3/5  validity 50.50  https://www.investopedia.com/buying-a-house", lines[0])
}

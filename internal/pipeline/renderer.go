package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veracity/internal/model"
)

// Format is an output format for a Result
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
	FormatLegacy   Format = "legacy"
)

// Formats lists the supported output formats
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatLegacy}

// ParseFormat accepts a format name and its common aliases
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "legacy":
		return FormatLegacy, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: json, yaml, md, legacy)", s)
	}
}

// Render writes r to w in the given format
func Render(w io.Writer, r *model.Result, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, r)
	case FormatLegacy:
		return encodeJSON(w, r.Legacy())
	case FormatYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(r); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return e.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, RenderMarkdown(r))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encodeJSON(w io.Writer, v any) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	e.SetEscapeHTML(false)
	if err := e.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteResult renders r to path, or to stdout when path is empty
func WriteResult(r *model.Result, format Format, path string, stdout io.Writer) error {
	if path == "" {
		return Render(stdout, r, format)
	}

	var buf bytes.Buffer
	if err := Render(&buf, r, format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// RenderMarkdown formats a Result as a Markdown report
func RenderMarkdown(r *model.Result) string {
	var b strings.Builder

	b.WriteString("# Source Credibility Report\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n\n", r.Query)
	fmt.Fprintf(&b, "**URL:** %s\n\n", r.URL)
	fmt.Fprintf(&b, "**Validity:** %.2f / 100 %s (%d/5)\n\n", r.ValidityScore, r.Stars.Icon, r.Stars.Score)
	fmt.Fprintf(&b, "> %s\n\n", r.Explanation)

	b.WriteString("## Signals\n\n")
	b.WriteString("| Signal | Score | Weight | Notes |\n")
	b.WriteString("|--------|------:|-------:|-------|\n")
	for _, s := range r.Signals {
		note := s.Detail
		if s.Defaulted {
			note = "default: " + note
		}
		fmt.Fprintf(&b, "| %s | %.2f | %.2f | %s |\n", s.Dimension.Label(), s.Score, s.Weight, escapeCell(note))
	}
	b.WriteString("\n")

	b.WriteString("## Source\n\n")
	if r.Source.OK {
		fmt.Fprintf(&b, "- Fetched: HTTP %d, %d characters of paragraph text\n", r.Source.StatusCode, r.Source.TextLength)
		if r.Source.FinalURL != "" && r.Source.FinalURL != r.URL {
			fmt.Fprintf(&b, "- Final URL: %s\n", r.Source.FinalURL)
		}
	} else {
		fmt.Fprintf(&b, "- Fetch failed: %s\n", r.Source.Error)
	}
	fmt.Fprintf(&b, "- Evaluated: %s\n", r.EvaluatedAt.Format("2006-01-02 15:04:05 UTC"))

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

// RenderSummary prints a one-line verdict
func RenderSummary(w io.Writer, r *model.Result) {
	_, _ = fmt.Fprintf(w, "%s %d/5  validity %.2f  %s\n", r.Stars.Icon, r.Stars.Score, r.ValidityScore, r.URL)
	_, _ = fmt.Fprintf(w, "  %s\n", r.Explanation)
}

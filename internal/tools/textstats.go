package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// NewTextAnalyzerTool creates the text statistics tool.
//
// Sentence counting is deliberately naive: it sums occurrences of '.', '!'
// and '?', so "Wait...!" over-counts. Word count is whitespace tokenization.
func NewTextAnalyzerTool() *Tool {
	return &Tool{
		Spec: ToolSpec{
			Name:        "text_analyzer",
			Description: "Analyze text and provide statistics",
			Params: []ParameterSpec{
				{
					Name:        "text",
					Type:        ParamString,
					Description: "Text to analyze",
					Required:    true,
				},
			},
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			text := ArgString(args, "text")
			if text == "" {
				return "", fmt.Errorf("No text provided")
			}

			charCount := utf8.RuneCountInString(text)
			charCountNoSpaces := utf8.RuneCountInString(strings.ReplaceAll(text, " ", ""))
			wordCount := len(strings.Fields(text))
			sentenceCount := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")

			paragraphCount := 0
			for _, p := range strings.Split(text, "\n\n") {
				if strings.TrimSpace(p) != "" {
					paragraphCount++
				}
			}

			avg := float64(wordCount) / float64(max(sentenceCount, 1))

			var b strings.Builder
			b.WriteString("Text Analysis Results:\n")
			fmt.Fprintf(&b, "- Character count: %d\n", charCount)
			fmt.Fprintf(&b, "- Character count (no spaces): %d\n", charCountNoSpaces)
			fmt.Fprintf(&b, "- Word count: %d\n", wordCount)
			fmt.Fprintf(&b, "- Sentence count: %d\n", sentenceCount)
			fmt.Fprintf(&b, "- Paragraph count: %d\n", paragraphCount)
			fmt.Fprintf(&b, "- Average words per sentence: %.1f\n", avg)
			return b.String(), nil
		},
	}
}

package oracle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tailscale/hujson"
)

var fenceRe = regexp.MustCompile("```json|```")

// stripFences removes markdown code fences the model tends to wrap its
// JSON in.
func stripFences(s string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(s, ""))
}

var tagRe = regexp.MustCompile(`<([^>]+)>`)

// sanitize prepares raw model output for parsing. Order matters: fences
// first, then newline flattening (the model embeds raw newlines inside
// JSON string values, which strict parsers reject), then tag escaping so
// JSX-like snippets cannot reach a renderer as markup.
func sanitize(raw string) string {
	cleaned := fenceRe.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, `\n`, " ")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = tagRe.ReplaceAllString(cleaned, "&lt;$1&gt;")
	return strings.TrimSpace(cleaned)
}

// decodeLenient parses cleaned model output into v, tolerating trailing
// commas and comments the model sometimes emits.
func decodeLenient(cleaned string, v any) error {
	std, err := hujson.Standardize([]byte(cleaned))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadOutput, err)
	}
	if err := json.Unmarshal(std, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadOutput, err)
	}
	return nil
}

package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// CompleteObject requests a JSON object and returns it as a gjson document.
// Text around the outermost braces is ignored.
func CompleteObject(ctx context.Context, c Completer, req Request) (gjson.Result, error) {
	req.JSON = true
	text, err := c.Complete(ctx, req)
	if err != nil {
		return gjson.Result{}, err
	}
	return ParseObject(text)
}

// ParseObject extracts the first '{' .. last '}' span of text.
func ParseObject(text string) (gjson.Result, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return gjson.Result{}, fmt.Errorf("%w: no JSON object in output", ErrGeneration)
	}

	raw := text[start : end+1]
	if !gjson.Valid(raw) {
		return gjson.Result{}, fmt.Errorf("%w: malformed JSON object", ErrGeneration)
	}
	return gjson.Parse(raw), nil
}

// Strings collects the non-empty trimmed strings of an array field.
func Strings(r gjson.Result) []string {
	var out []string
	for _, item := range r.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

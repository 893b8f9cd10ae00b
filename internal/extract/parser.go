// Package extract pulls structured line-item candidates out of raw model
// output. Vision and text models return JSON wrapped in markdown fences,
// prose, trailing commas, and other quirks; this package parses defensively
// so one sloppy response does not sink a whole batch.
package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Pre-compiled patterns. Compiling per parse is an order of magnitude slower.
var (
	codeFenceStartRegex = regexp.MustCompile(`(?s)^` + "`" + `{3}(?:json|javascript|js)?\s*\n?([\s\S]*?)\n?` + "`" + `{3}\s*$`)
	codeFenceAnyRegex   = regexp.MustCompile(`(?s)` + "`" + `{3}(?:json|javascript|js)?\s*\n?([\s\S]*?)\n?` + "`" + `{3}`)

	trailingCommaRegex     = regexp.MustCompile(`,(\s*[}\]])`)
	unquotedKeyRegex       = regexp.MustCompile(`([{,]\s*)([a-zA-Z_$][a-zA-Z0-9_$]*)\s*:`)
	singleLineCommentRegex = regexp.MustCompile(`(?m)//.*$`)
	multiLineCommentRegex  = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Greedy on purpose: nested structures must be captured whole.
	objectRegex = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	arrayRegex  = regexp.MustCompile(`(?s)\[[\s\S]*\]`)
)

// maxInputSize caps parse input to keep a runaway response from exhausting
// memory.
const maxInputSize = 10 * 1024 * 1024

// Parse attempts to unmarshal model output into T, falling back through
// cleanup strategies when the raw text is not valid JSON:
//
//  1. Direct parse
//  2. Strip markdown code fences and retry
//  3. Fix trailing commas, unquoted keys, and comments and retry
//  4. Extract the first JSON object/array from mixed prose and retry
func Parse[T any](text string) (T, error) {
	var zero T
	if len(text) > maxInputSize {
		return zero, fmt.Errorf("model output exceeds size limit (%d > %d bytes)", len(text), maxInputSize)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return zero, fmt.Errorf("model output is empty")
	}

	if result, err := tryParse[T](trimmed); err == nil {
		return result, nil
	} else {
		slog.Debug("direct JSON parse failed, trying cleanup strategies",
			"error", err.Error(), "preview", truncate(trimmed, 100))
	}

	withoutFences := removeCodeFences(trimmed)
	if withoutFences != trimmed {
		if result, err := tryParse[T](withoutFences); err == nil {
			return result, nil
		}
	}

	cleaned := cleanupJSON(withoutFences)
	if result, err := tryParse[T](cleaned); err == nil {
		return result, nil
	}

	if extracted := extractJSON(cleaned); extracted != "" {
		if result, err := tryParse[T](extracted); err == nil {
			return result, nil
		}
	}

	return zero, fmt.Errorf("all JSON parsing strategies failed for model output (preview: %s)", truncate(trimmed, 100))
}

func tryParse[T any](text string) (T, error) {
	var result T
	err := json.Unmarshal([]byte(text), &result)
	return result, err
}

// removeCodeFences strips markdown code fences, whether they wrap the whole
// response or sit in the middle of prose.
func removeCodeFences(text string) string {
	cleaned := codeFenceStartRegex.ReplaceAllString(text, "$1")
	if cleaned == text {
		cleaned = codeFenceAnyRegex.ReplaceAllString(text, "$1")
	}
	if strings.HasPrefix(cleaned, "`") && strings.HasSuffix(cleaned, "`") {
		cleaned = strings.TrimPrefix(cleaned, "`")
		cleaned = strings.TrimSuffix(cleaned, "`")
	}
	return strings.TrimSpace(cleaned)
}

// cleanupJSON fixes the JSON mistakes models actually make: trailing commas,
// unquoted keys, and comments. Single quotes are left alone — converting
// them would corrupt valid JSON containing apostrophes.
func cleanupJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = trailingCommaRegex.ReplaceAllString(cleaned, "$1")
	cleaned = unquotedKeyRegex.ReplaceAllString(cleaned, `$1"$2":`)
	cleaned = singleLineCommentRegex.ReplaceAllString(cleaned, "")
	cleaned = multiLineCommentRegex.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// extractJSON pulls the first JSON object or array out of mixed content.
// The first-character check keeps an array response from being shredded
// into its first element.
func extractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '[':
			if match := arrayRegex.FindString(text); match != "" {
				return match
			}
		case '{':
			if match := objectRegex.FindString(text); match != "" {
				return match
			}
		}
	}
	// Mixed prose: take whichever JSON value starts first, so an array is
	// never shredded into its first element object.
	objLoc := objectRegex.FindStringIndex(text)
	arrLoc := arrayRegex.FindStringIndex(text)
	switch {
	case objLoc == nil && arrLoc == nil:
		return ""
	case arrLoc == nil || (objLoc != nil && objLoc[0] < arrLoc[0]):
		return text[objLoc[0]:objLoc[1]]
	default:
		return text[arrLoc[0]:arrLoc[1]]
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

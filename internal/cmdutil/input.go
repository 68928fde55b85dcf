// Package cmdutil parses command-line input: object IDs and JSON arguments.
package cmdutil

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// idPattern matches a dashed UUID or 32 bare hex characters.
var idPattern = regexp.MustCompile(`(?i)[0-9a-f]{8}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{4}-?[0-9a-f]{12}`)

// NormalizeID accepts a raw ID or a notion.so URL and returns the ID in its
// canonical dashed, lowercase form. Values that do not look like a UUID are
// returned trimmed so the API can reject them itself.
func NormalizeID(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("id is required")
	}
	if looksLikeURL(trimmed) {
		// the ID is the last hex run in the path, before any query string
		path, _, _ := strings.Cut(trimmed, "?")
		matches := idPattern.FindAllString(path, -1)
		if len(matches) == 0 {
			return "", fmt.Errorf("no Notion ID found in %q", trimmed)
		}
		return dashed(matches[len(matches)-1]), nil
	}
	if idPattern.MatchString(trimmed) && len(idPattern.FindString(trimmed)) == len(trimmed) {
		return dashed(trimmed), nil
	}
	return trimmed, nil
}

func dashed(id string) string {
	hex := strings.ToLower(strings.ReplaceAll(id, "-", ""))
	return hex[0:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:32]
}

func looksLikeURL(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.Contains(lower, "notion.so") || strings.Contains(lower, "notion.site") ||
		strings.Contains(value, "/")
}

// ReadJSONArg resolves a JSON argument: inline text, "@path" for a file, or
// "-" for stdin.
func ReadJSONArg(value string, stdin io.Reader) ([]byte, error) {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	case strings.HasPrefix(trimmed, "@"):
		data, err := os.ReadFile(trimmed[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", trimmed[1:], err)
		}
		return data, nil
	default:
		return []byte(trimmed), nil
	}
}

// UnmarshalJSONArg reads value with ReadJSONArg and decodes it into target.
// A JSON string that itself contains JSON is unwrapped once.
func UnmarshalJSONArg(value string, stdin io.Reader, target any) error {
	data, err := ReadJSONArg(value, stdin)
	if err != nil {
		return err
	}
	var inner string
	if json.Unmarshal(data, &inner) == nil && json.Valid([]byte(inner)) {
		data = []byte(inner)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

package expand

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Directive configuration bodies use one "Key = <expression>" assignment per
// line. Values are quoted strings, integers, booleans, bare identifiers
// (module handles), or bracketed lists of those.

var assignmentLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+)$`)

// parseAssignments parses a directive body into key/value settings.
// Unparseable lines come back as errors; the caller downgrades them to
// warnings and keeps going.
func parseAssignments(body string) (map[string]any, []error) {
	settings := make(map[string]any)
	var parseErrs []error

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := assignmentLine.FindStringSubmatch(line)
		if m == nil {
			parseErrs = append(parseErrs, fmt.Errorf("not a Key = value assignment: %q", line))
			continue
		}
		val, err := parseValue(strings.TrimSpace(m[2]))
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: %w", m[1], err))
			continue
		}
		settings[m[1]] = val
	}
	return settings, parseErrs
}

func parseValue(s string) (any, error) {
	switch {
	case s == "true":
		return true, nil
	case s == "false":
		return false, nil
	case strings.HasPrefix(s, "["):
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("unterminated list: %q", s)
		}
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return []any{}, nil
		}
		var items []any
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				return nil, fmt.Errorf("empty list element in %q", s)
			}
			item, err := parseValue(part)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case strings.HasPrefix(s, `"`):
		return strconv.Unquote(s)
	default:
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		if !isIdentifier(s) {
			return nil, fmt.Errorf("invalid value: %q", s)
		}
		return s, nil
	}
}

// isIdentifier accepts bare module handles, including dotted and path-like
// forms such as "pkg/store" or "store.Cache".
func isIdentifier(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.', r == '/', r == '-':
		default:
			return false
		}
	}
	return s != ""
}

// stringList extracts a list-of-strings setting; scalars promote to a
// one-element list.
func stringList(settings map[string]any, key string) []string {
	v, ok := settings[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func boolOr(settings map[string]any, key string, def bool) bool {
	if v, ok := settings[key].(bool); ok {
		return v
	}
	return def
}

func intOr(settings map[string]any, key string, def int) int {
	if v, ok := settings[key].(int); ok {
		return v
	}
	return def
}

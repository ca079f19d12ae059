package env

import (
	"fmt"
	"strings"
)

const (
	placeholderPrefix = "${"
	placeholderSuffix = "}"
	valueSeparator    = ":"
)

// resolver substitutes ${key} and ${key:default} references in text.
// Placeholders nest, both in keys and in resolved values. In strict mode an
// unsatisfiable reference is an error; otherwise it is left verbatim.
type resolver struct {
	lookup func(key string) (string, bool)
	strict bool
}

func (r *resolver) resolve(text string) (string, error) {
	return r.parse(text, text, map[string]struct{}{})
}

func (r *resolver) parse(text, original string, visiting map[string]struct{}) (string, error) {
	var out strings.Builder
	rest := text
	for {
		start := strings.Index(rest, placeholderPrefix)
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:start])
		end := matchingSuffix(rest, start)
		if end < 0 {
			// Unterminated placeholder, keep it as literal text.
			out.WriteString(rest[start:])
			return out.String(), nil
		}

		resolved, ok, err := r.resolvePlaceholder(rest[start+len(placeholderPrefix):end], original, visiting)
		if err != nil {
			return "", err
		}
		if ok {
			out.WriteString(resolved)
		} else {
			out.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}
}

func (r *resolver) resolvePlaceholder(placeholder, original string, visiting map[string]struct{}) (string, bool, error) {
	// The key expression itself may contain placeholders.
	inner, err := r.parse(placeholder, original, visiting)
	if err != nil {
		return "", false, err
	}
	key, def, hasDefault := strings.Cut(inner, valueSeparator)

	if _, circular := visiting[key]; circular {
		if r.strict {
			return "", false, fmt.Errorf("circular placeholder reference %q in value %q", key, original)
		}
		return "", false, nil
	}

	if value, ok := r.lookup(key); ok {
		visiting[key] = struct{}{}
		resolved, err := r.parse(value, original, visiting)
		delete(visiting, key)
		if err != nil {
			return "", false, err
		}
		return resolved, true, nil
	}

	if hasDefault {
		resolved, err := r.parse(def, original, visiting)
		if err != nil {
			return "", false, err
		}
		return resolved, true, nil
	}

	if r.strict {
		return "", false, &UnresolvedPlaceholderError{Placeholder: key, Text: original}
	}
	return "", false, nil
}

// matchingSuffix finds the closing brace for the placeholder opening at
// start, accounting for nested ${...} between them.
func matchingSuffix(s string, start int) int {
	depth := 0
	for i := start + len(placeholderPrefix); i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], placeholderPrefix):
			depth++
			i++
		case s[i:i+1] == placeholderSuffix:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

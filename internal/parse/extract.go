package parse

import "encoding/json"

// extractJSONObject returns the first syntactically valid top-level
// JSON object in raw. Generation backends routinely wrap their JSON in
// prose or markdown fences, and the prose itself can contain brace
// groups that are not JSON, so each balanced candidate is validated
// and the scan resumes from the next '{' when it fails. Returns
// ok=false when no valid object exists.
func extractJSONObject(raw string) (string, bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		end, ok := balancedEnd(raw, i)
		if !ok {
			continue
		}
		candidate := raw[i : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// balancedEnd walks braces from the '{' at start and returns the index
// of its matching '}', skipping brace characters inside string
// literals and honoring escapes.
func balancedEnd(raw string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

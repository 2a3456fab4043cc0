package skill

import "strings"

type Skill struct {
	ID   string
	Name string
}

// Normalize trims the name and collapses inner whitespace runs to a single
// space. Case is preserved; lookups compare case-insensitively.
func Normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeAll normalizes names, drops empty ones and removes case-insensitive
// duplicates. The first spelling of a name wins and input order is kept.
func NormalizeAll(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, raw := range names {
		name := Normalize(raw)
		if name == "" {
			continue
		}
		key := Key(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, name)
	}
	return result
}

// Key is the case-insensitive identity of a skill name.
func Key(name string) string {
	return strings.ToLower(Normalize(name))
}

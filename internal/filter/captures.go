package filter

import "regexp"

// ExtractNamedCaptures returns the named capture groups of the first match
// of compiled against filename. An unmatched input yields an empty map.
// Unnamed groups are ignored.
func ExtractNamedCaptures(filename string, compiled *regexp.Regexp) map[string]string {
	result := make(map[string]string)
	match := compiled.FindStringSubmatch(filename)
	if match == nil {
		return result
	}
	for i, name := range compiled.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		result[name] = match[i]
	}
	return result
}

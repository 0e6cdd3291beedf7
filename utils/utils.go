package utils

import "strings"

// SplitTags takes a comma-separated string and returns the trimmed,
// non-empty entries. Case and order are preserved.
func SplitTags(input string) []string {
	tags := []string{}
	for _, p := range strings.Split(input, ",") {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

package changelog

import "strings"

// Build renders items as a bulleted Markdown list. Items without a title are
// dropped, as is any item whose rendered line contains "#trivial" in any
// case. An empty item list yields an empty string.
func Build(items []Item) string {
	var lines []string
	for _, item := range items {
		title, ok := item.Title()
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(title), "#trivial") {
			continue
		}
		lines = append(lines, "- "+title)
	}
	return strings.Join(lines, "\n")
}

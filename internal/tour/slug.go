package tour

import (
	"regexp"
	"strings"
)

var (
	slugDropRegex     = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRegex = regexp.MustCompile(`[\s_-]+`)
	slugEdgeRegex     = regexp.MustCompile(`^-+|-+$`)
)

// Slugify turns a tour title into a file-name friendly slug:
// "Getting Started: Routing!" becomes "getting-started-routing".
func Slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = slugDropRegex.ReplaceAllString(s, "")
	s = slugCollapseRegex.ReplaceAllString(s, "-")
	return slugEdgeRegex.ReplaceAllString(s, "")
}

// FileName returns the tour file name for a title.
func FileName(title string) string {
	return Slugify(title) + Extension
}

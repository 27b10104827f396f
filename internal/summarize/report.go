package summarize

import (
	"fmt"
	"strings"
)

// ReportKeywords is the number of keywords printed in a report.
const ReportKeywords = 20

// Report renders the downloadable plain-text study notes for filename.
func Report(filename string, keywords []string, s Summary) string {
	if len(keywords) > ReportKeywords {
		keywords = keywords[:ReportKeywords]
	}
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "STUDY NOTES SUMMARY\n%s\n", rule)
	fmt.Fprintf(&b, "Original File: %s\n\n", filename)
	fmt.Fprintf(&b, "KEYWORDS:\n%s\n\n", strings.Join(keywords, ", "))
	fmt.Fprintf(&b, "%s\nSUMMARY:\n\n%s\n\n", rule, s.Formatted)
	fmt.Fprintf(&b, "%s\nGenerated by Study Notes Search Engine\n", rule)
	return b.String()
}

// ReportFilename is the attachment name used when downloading a report.
func ReportFilename(filename string) string {
	return "summary_" + filename + ".txt"
}

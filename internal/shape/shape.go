// Package shape defines the canonical post layout: an author byline directly
// under the first H1 and the fixed footer block somewhere in the body. Check
// reports how a post deviates from it; Normalize applies the minimal edits to
// bring a post into line. Both operate on in-memory text only.
package shape

import (
	"strings"
)

const (
	// HeadingPrefix marks a top-level heading once surrounding whitespace is trimmed.
	HeadingPrefix = "# "

	// AuthorLine must appear on the line immediately after the first H1.
	AuthorLine = "**By Amit Mishra, Room Service Branding – AI Technology Analyst & Brand Strategist**"

	// FooterBlock must be contained verbatim in every post.
	FooterBlock = `⸻

About the Author

Amit Mishra is a technology analyst and brand strategist at Room Service Branding, specializing in emerging AI technologies and their business applications. With extensive experience in evaluating cutting-edge AI tools and platforms, Amit provides insights that help businesses navigate the rapidly evolving artificial intelligence landscape.

⸻

Connect With Me

📱 TikTok | 📸 Instagram | 🎥 YouTube | 💼 LinkedIn | 🐦 Chirp | 🌐 Portfolio | ✍️ Medium

⸻

Get a passive side hustle for next to nothing
© 2025 Amit Mishra, Room Service Branding. All rights reserved.`
)

// SplitLines splits on "\n" only. A trailing newline yields a final empty
// element so that JoinLines(SplitLines(s)) == s.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// FirstHeading returns the index of the first H1 line.
func FirstHeading(lines []string) (int, bool) {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), HeadingPrefix) {
			return i, true
		}
	}
	return -1, false
}

// hasAuthorAt reports whether lines[idx] holds the byline.
func hasAuthorAt(lines []string, idx int) bool {
	return idx < len(lines) && strings.TrimSpace(lines[idx]) == AuthorLine
}

// HasFooter uses substring containment on the whole text, not line matching.
func HasFooter(text string) bool {
	return strings.Contains(text, FooterBlock)
}

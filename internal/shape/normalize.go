package shape

import "strings"

// Result is the outcome of Normalize.
type Result struct {
	Text    string
	Changed bool

	InsertedAuthor bool
	AppendedFooter bool
	// MissingHeading is set when no H1 exists; the byline is skipped but the
	// footer is still enforced.
	MissingHeading bool
}

// Normalize inserts the byline under the first H1 and appends the footer when
// either is missing. Running it on its own output is a no-op.
func Normalize(text string) Result {
	var res Result
	lines := SplitLines(text)

	if idx, ok := FirstHeading(lines); !ok {
		res.MissingHeading = true
	} else if next := idx + 1; !hasAuthorAt(lines, next) {
		lines = insertLine(lines, next, AuthorLine)
		res.InsertedAuthor = true
	}

	res.Text = JoinLines(lines)
	if !HasFooter(res.Text) {
		res.Text = appendFooter(res.Text)
		res.AppendedFooter = true
	}

	res.Changed = res.InsertedAuthor || res.AppendedFooter
	return res
}

func insertLine(lines []string, at int, line string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	return append(out, lines[at:]...)
}

// appendFooter separates the footer from existing content by exactly one
// blank line.
func appendFooter(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(FooterBlock) + 2)
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(FooterBlock)
	return b.String()
}

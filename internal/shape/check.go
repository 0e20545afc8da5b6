package shape

import "fmt"

// Kind classifies a Violation.
type Kind string

const (
	KindMissingHeading Kind = "missing-heading"
	KindMissingAuthor  Kind = "missing-author"
	KindMissingFooter  Kind = "missing-footer"
)

// Violation describes one way a post fails the canonical layout.
type Violation struct {
	Kind Kind
	// Line is the 1-based line where the byline was expected. Only set for
	// KindMissingAuthor.
	Line int
}

func (v Violation) Error() string {
	switch v.Kind {
	case KindMissingHeading:
		return "No H1 heading found"
	case KindMissingAuthor:
		return fmt.Sprintf("Missing author line immediately after H1 (expected on line %d)", v.Line)
	case KindMissingFooter:
		return "Missing required footer block"
	default:
		return fmt.Sprintf("unknown violation %q", string(v.Kind))
	}
}

func (v Violation) String() string {
	return v.Error()
}

// Check returns the violations found in text, heading/author first and
// footer second. An empty result means the post is already canonical.
func Check(text string) []Violation {
	var violations []Violation
	lines := SplitLines(text)
	if idx, ok := FirstHeading(lines); !ok {
		violations = append(violations, Violation{Kind: KindMissingHeading})
	} else if next := idx + 1; !hasAuthorAt(lines, next) {
		violations = append(violations, Violation{Kind: KindMissingAuthor, Line: next + 1})
	}
	if !HasFooter(JoinLines(lines)) {
		violations = append(violations, Violation{Kind: KindMissingFooter})
	}
	return violations
}

// Messages renders violations as human-readable descriptions.
func Messages(violations []Violation) []string {
	if len(violations) == 0 {
		return nil
	}
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Error())
	}
	return out
}

// Package report prints lint and normalize results for humans. Colours are
// only emitted when the destination is a terminal.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/blog-tools/internal/batch"
)

type styles struct {
	pass  lipgloss.Style
	fail  lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
	head  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		pass:  r.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#F5A623")),
		muted: r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		head:  r.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true),
	}
}

// Printer writes progress to Out and failures to Err.
type Printer struct {
	out, err       io.Writer
	outSty, errSty styles
}

// NewPrinter builds a printer. err may equal out.
func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{
		out:    out,
		err:    err,
		outSty: newStyles(out),
		errSty: newStyles(err),
	}
}

// Lint prints a lint report in the order posts were listed.
func (p *Printer) Lint(r batch.LintReport) {
	if len(r.Results) == 0 {
		fmt.Fprintln(p.out, p.outSty.muted.Render("No markdown files found to lint"))
		return
	}
	fmt.Fprintln(p.out, p.outSty.head.Render(fmt.Sprintf("Linting %d file(s)...", len(r.Results))))
	fmt.Fprintln(p.out)
	for _, res := range r.Results {
		if res.OK() {
			fmt.Fprintln(p.out, p.outSty.pass.Render("✓ "+res.Name))
			continue
		}
		fmt.Fprintln(p.err, p.errSty.fail.Render("❌ "+res.Name+":"))
		for _, v := range res.Violations {
			fmt.Fprintf(p.err, "   - %s\n", v.Error())
		}
		fmt.Fprintln(p.err)
	}
	if r.Failed() {
		fmt.Fprintln(p.err)
		fmt.Fprintln(p.err, p.errSty.fail.Render("Linting failed! Please fix the errors above."))
		return
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.outSty.pass.Render("✓ All posts passed linting!"))
}

// Normalize prints what happened to each post. Missing-heading warnings are
// left to the logger.
func (p *Printer) Normalize(r batch.NormalizeReport) {
	if len(r.Results) == 0 {
		fmt.Fprintln(p.out, p.outSty.muted.Render("No markdown files found to process"))
		return
	}
	fmt.Fprintln(p.out, p.outSty.head.Render(fmt.Sprintf("Processing %d file(s)...", len(r.Results))))
	for _, res := range r.Results {
		if res.InsertedAuthor {
			fmt.Fprintf(p.out, "Inserted author line in %s\n", res.Path)
		}
		if res.AppendedFooter {
			fmt.Fprintf(p.out, "Appended footer in %s\n", res.Path)
		}
		switch {
		case res.Written:
			fmt.Fprintln(p.out, p.outSty.pass.Render("Updated "+res.Path))
		case res.Changed:
			fmt.Fprintln(p.out, p.outSty.warn.Render("Would update "+res.Path))
		default:
			fmt.Fprintln(p.out, p.outSty.muted.Render("No changes needed for "+res.Path))
		}
	}
	if r.DryRun {
		fmt.Fprintf(p.out, "Dry run: %d of %d file(s) would change\n", r.ChangedCount(), len(r.Results))
	}
	fmt.Fprintln(p.out, "Done!")
}

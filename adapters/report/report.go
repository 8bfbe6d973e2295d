// Package report renders human-readable summaries of completed hazard
// calculations: markdown for logs and review, HTML for the web surface.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gohaz/domain/hazard"
	"gohaz/domain/imt"
)

// Generator builds calculation reports
type Generator struct{}

// NewGenerator creates a report generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Markdown renders a run summary: the calculation settings followed by
// per-measure tables of exceedance probability statistics across sites.
func (g *Generator) Markdown(calc *hazard.Calculation, levels imt.Levels, curves hazard.CurveSet) (string, error) {
	summaries, err := hazard.Summarize(curves, levels)
	if err != nil {
		return "", fmt.Errorf("failed to summarize curves: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Hazard Calculation %s\n\n", calc.ID)
	fmt.Fprintf(&b, "- Status: %s\n", calc.Status)
	fmt.Fprintf(&b, "- Investigation time: %g years\n", calc.TimeSpan)
	fmt.Fprintf(&b, "- Truncation level: %g sigma\n", calc.TruncationLevel)
	if calc.CAVMin > 0 {
		fmt.Fprintf(&b, "- CAV screening: %g g.s\n", calc.CAVMin)
	}
	fmt.Fprintf(&b, "- Sites: %d, Sources: %d, Workers: %d\n\n", calc.NumSites, calc.NumSources, calc.Workers)

	measures := make([]string, 0, len(summaries))
	for m := range summaries {
		measures = append(measures, m.String())
	}
	sort.Strings(measures)

	for _, name := range measures {
		fmt.Fprintf(&b, "## %s\n\n", name)
		b.WriteString("| Level | Mean PoE | Median PoE | Max PoE |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, s := range summaries[imt.IMT(name)] {
			fmt.Fprintf(&b, "| %g | %.4g | %.4g | %.4g |\n", s.Level, s.Mean, s.Median, s.Max)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// HTML renders the markdown report to a standalone HTML fragment
func (g *Generator) HTML(calc *hazard.Calculation, levels imt.Levels, curves hazard.CurveSet) ([]byte, error) {
	md, err := g.Markdown(calc, levels, curves)
	if err != nil {
		return nil, err
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer), nil
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexshd/ubench"
)

// Comparison is the change of one (name, arg) pair between two runs.
type Comparison struct {
	Name     string
	Arg      ubench.Arg
	MeanDiff float64 // percent; negative is faster
	CVDiff   float64 // absolute change in coefficient of variation
	Prev     ubench.Entry
	Curr     ubench.Entry
}

type entryKey struct {
	name string
	arg  ubench.Arg
}

// Compare pairs the entries present in both runs, in curr's order.
func Compare(prev, curr Run) []Comparison {
	prevByKey := make(map[entryKey]ubench.Entry, len(prev.Entries))
	for _, e := range prev.Entries {
		prevByKey[entryKey{e.Name, e.Arg}] = e
	}

	var comparisons []Comparison
	for _, c := range curr.Entries {
		p, ok := prevByKey[entryKey{c.Name, c.Arg}]
		if !ok {
			continue
		}

		comp := Comparison{
			Name:   c.Name,
			Arg:    c.Arg,
			CVDiff: c.CV - p.CV,
			Prev:   p,
			Curr:   c,
		}
		if p.Mean > 0 {
			comp.MeanDiff = (c.Mean - p.Mean) / p.Mean * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Regressed reports whether the mean grew by more than threshold percent.
func (c Comparison) Regressed(threshold float64) bool {
	return c.MeanDiff > threshold
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s(%d): %+.2f%% mean", c.Name, c.Arg, c.MeanDiff)
}

// WriteComparisons writes one Markdown row per comparison.
func WriteComparisons(out io.Writer, comps []Comparison, unit string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "| name(arg) | old mean (%s) | new mean (%s) | delta | old cv | new cv |\n", unit, unit)
	sb.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, c := range comps {
		fmt.Fprintf(&sb, "| %s(%d) | %s | %s | %+.2f%% | %s | %s |\n",
			c.Name, c.Arg,
			FormatValue(c.Prev.Mean), FormatValue(c.Curr.Mean),
			c.MeanDiff,
			FormatValue(c.Prev.CV), FormatValue(c.Curr.CV))
	}
	_, err := io.WriteString(out, sb.String())
	return err
}

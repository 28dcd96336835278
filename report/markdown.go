// Package report renders and persists ubench results.
//
// The measurement core only produces []ubench.Entry; everything about
// presentation lives here:
//
//   - Markdown: right-aligned Markdown table for terminals and READMEs
//   - WriteBenchfmt: Go benchmark format, readable by benchstat
//   - Exporter: Prometheus gauges, optionally written as a textfile
//   - FileStore / Compare: JSON run history and run-to-run deltas
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexshd/ubench"
)

// FormatArg renders an argument as an integer.
func FormatArg(a ubench.Arg) string {
	return strconv.Itoa(a)
}

// FormatValue renders a statistic with two fixed decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Row is one entry with every cell already formatted.
type Row struct {
	Name   string // "name(arg)"
	Mean   string
	Median string
	StdDev string
	CV     string
}

// NewRow formats e.
func NewRow(e ubench.Entry) Row {
	return Row{
		Name:   e.Name + "(" + FormatArg(e.Arg) + ")",
		Mean:   FormatValue(e.Mean),
		Median: FormatValue(e.Median),
		StdDev: FormatValue(e.StdDev),
		CV:     FormatValue(e.CV),
	}
}

// HeaderRow returns the column titles for values in unit.
func HeaderRow(unit string) Row {
	return Row{
		Name:   "name(arg)",
		Mean:   "mean (" + unit + ")",
		Median: "median (" + unit + ")",
		StdDev: "stddev (" + unit + ")",
		CV:     "cv",
	}
}

// Widths holds the display width of each column.
type Widths struct {
	Name, Mean, Median, StdDev, CV int
}

// Size returns the widths of r's cells.
func (r Row) Size() Widths {
	return Widths{
		Name:   len(r.Name),
		Mean:   len(r.Mean),
		Median: len(r.Median),
		StdDev: len(r.StdDev),
		CV:     len(r.CV),
	}
}

// Adapt widens w so every column also fits o.
func (w Widths) Adapt(o Widths) Widths {
	return Widths{
		Name:   max(w.Name, o.Name),
		Mean:   max(w.Mean, o.Mean),
		Median: max(w.Median, o.Median),
		StdDev: max(w.StdDev, o.StdDev),
		CV:     max(w.CV, o.CV),
	}
}

func (r Row) write(sb *strings.Builder, w Widths) {
	fmt.Fprintf(sb, "%*s | %*s | %*s | %*s | %*s\n",
		w.Name, r.Name,
		w.Mean, r.Mean,
		w.Median, r.Median,
		w.StdDev, r.StdDev,
		w.CV, r.CV)
}

// Markdown writes entries as a Markdown table with right-aligned columns.
//
//	   name(arg) | mean (cycle) | median (cycle) | stddev (cycle) |   cv
//	------------:|-------------:|---------------:|---------------:|----:
//	nth_prime(5) |        61.35 |          60.90 |           2.01 | 0.03
func Markdown(out io.Writer, entries []ubench.Entry, unit string) error {
	header := HeaderRow(unit)
	rows := make([]Row, len(entries))

	size := header.Size()
	for i, e := range entries {
		rows[i] = NewRow(e)
		size = size.Adapt(rows[i].Size())
	}

	var sb strings.Builder
	header.write(&sb, size)

	sb.WriteString(strings.Repeat("-", size.Name))
	sb.WriteString(":|")
	sb.WriteString(strings.Repeat("-", size.Mean+1))
	sb.WriteString(":|")
	sb.WriteString(strings.Repeat("-", size.Median+1))
	sb.WriteString(":|")
	sb.WriteString(strings.Repeat("-", size.StdDev+1))
	sb.WriteString(":|")
	sb.WriteString(strings.Repeat("-", size.CV))
	sb.WriteString(":\n")

	for _, r := range rows {
		r.write(&sb, size)
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

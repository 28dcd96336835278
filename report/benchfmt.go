package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/perf/benchfmt"

	"github.com/alexshd/ubench"
)

// BenchName converts a routine name into a benchmark name accepted by
// benchstat: no spaces, first rune upper-case.
func BenchName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "Unnamed"
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// WriteBenchfmt writes entries in the Go benchmark format. Each entry
// becomes Benchmark<Name>/arg=<arg> carrying its mean as <unit>/op plus
// median, stddev and cv as extra metrics. labels become file-level
// configuration lines ("key: value").
func WriteBenchfmt(out io.Writer, entries []ubench.Entry, unit string, labels map[string]string) error {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	config := make([]benchfmt.Config, 0, len(keys))
	for _, k := range keys {
		config = append(config, benchfmt.Config{Key: k, Value: []byte(labels[k]), File: true})
	}

	w := benchfmt.NewWriter(out)
	for _, e := range entries {
		res := &benchfmt.Result{
			Config: config,
			Name:   benchfmt.Name(fmt.Sprintf("%s/arg=%d", BenchName(e.Name), e.Arg)),
			Iters:  1,
			Values: []benchfmt.Value{
				{Value: e.Mean, Unit: unit + "/op"},
				{Value: e.Median, Unit: "median-" + unit + "/op"},
				{Value: e.StdDev, Unit: "stddev-" + unit + "/op"},
				{Value: e.CV, Unit: "cv"},
			},
		}
		if err := w.Write(res); err != nil {
			return fmt.Errorf("write %s: %w", res.Name, err)
		}
	}
	return nil
}

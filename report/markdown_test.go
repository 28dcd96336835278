package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/ubench"
)

func TestMarkdown_Layout(t *testing.T) {
	entries := []ubench.Entry{
		{Name: "nth_prime", Arg: 5, Mean: 61.35, Median: 60.9, StdDev: 2.01, CV: 0.0327},
	}

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, entries, "cycle"))

	want := strings.Join([]string{
		"   name(arg) | mean (cycle) | median (cycle) | stddev (cycle) |   cv",
		"------------:|-------------:|---------------:|---------------:|----:",
		"nth_prime(5) |        61.35 |          60.90 |           2.01 | 0.03",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestMarkdown_ColumnsGrowWithContent(t *testing.T) {
	entries := []ubench.Entry{
		{Name: "a", Arg: 1, Mean: 1, Median: 1},
		{Name: "long_routine_name", Arg: 1000, Mean: 123456789.126, Median: 2, StdDev: 3, CV: 12.5},
	}

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, entries, "ns"))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	// every data line has the header's width
	for _, l := range lines[2:] {
		assert.Len(t, l, len(lines[0]), l)
	}
	assert.True(t, strings.HasPrefix(lines[3], "long_routine_name(1000) | 123456789.13"), lines[3])
	assert.True(t, strings.HasSuffix(lines[3], "| 12.50"), lines[3])
	assert.True(t, strings.HasPrefix(lines[2], "                   a(1) |"), lines[2])
}

func TestMarkdown_NoEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, nil, "tick"))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "mean (tick)")
}

func TestWidths_Adapt(t *testing.T) {
	a := Widths{Name: 3, Mean: 10, Median: 1, StdDev: 4, CV: 2}
	b := Widths{Name: 5, Mean: 2, Median: 7, StdDev: 4, CV: 1}

	assert.Equal(t, Widths{Name: 5, Mean: 10, Median: 7, StdDev: 4, CV: 2}, a.Adapt(b))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0.00", FormatValue(0))
	assert.Equal(t, "0.03", FormatValue(0.0327))
	assert.Equal(t, "1234.57", FormatValue(1234.5678))
}

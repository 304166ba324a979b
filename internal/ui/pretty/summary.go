package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/markerlen/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 inputs measured in 3 files, 1 failed, 17 markers, max depth 3".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render("No inputs measured") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s measured in %d %s",
			stats.InputsMeasured, plural(stats.InputsMeasured, "input"),
			stats.FilesProcessed, plural(stats.FilesProcessed, "file")),
	}

	if stats.InputsFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.InputsFailed)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(
			fmt.Sprintf("%d %s unreadable", stats.FilesErrored, plural(stats.FilesErrored, "file"))))
	}

	parts = append(parts,
		s.Dim.Render(fmt.Sprintf("%d %s", stats.MarkersTotal, plural(stats.MarkersTotal, "marker"))),
		s.Dim.Render(fmt.Sprintf("max depth %d", stats.MaxDepth)),
	)

	line := strings.Join(parts, ", ")
	if stats.InputsFailed == 0 && stats.FilesErrored == 0 {
		line = s.Success.Render("OK") + " " + line
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files read:        " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Inputs measured:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.InputsMeasured)) + "\n")
	if stats.InputsFailed > 0 {
		builder.WriteString("  Inputs failed:     " +
			s.Failure.Render(strconv.Itoa(stats.InputsFailed)) + "\n")
	}
	builder.WriteString("  Markers decoded:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.MarkersTotal)) + "\n")
	builder.WriteString("  Deepest nesting:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.MaxDepth)) + "\n")

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0 || stats.InputsFailed > 0:
		builder.WriteString(s.Failure.Render("Measurement failed"))
	default:
		builder.WriteString(s.Success.Render("Measurement complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/markerlen/pkg/decompress"
	"github.com/yaklabco/markerlen/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFlexWidth     = 12
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	notMeasured      = "-"
	ellipsis         = "..."
)

// MeasurementRow is one row of the measurement table.
type MeasurementRow struct {
	Input      string
	Compressed string
	Flat       string
	Recursive  string
	Markers    string
	Depth      string
	Ratio      string

	// Error replaces the measurement cells when set.
	Error string
}

// MarkerRow is one row of the marker listing.
type MarkerRow struct {
	Offset int
	Depth  int
	Token  string
	Chars  int
	Reps   int
	Data   string
}

// column describes one table column.
type column struct {
	title string
	right bool
	flex  bool
	width int
}

// tableRow is a rendered row; message, when set, spans every column after the first.
type tableRow struct {
	cells   []string
	message string
}

// TableFormatter formats measurements as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// MeasurementRows converts a runner result into table rows grouped by file.
func MeasurementRows(result *runner.Result) [][]MeasurementRow {
	if result == nil {
		return nil
	}

	groups := make([][]MeasurementRow, 0, len(result.Files))
	for _, file := range result.Files {
		if file.Error != nil {
			groups = append(groups, []MeasurementRow{{Input: file.Path, Error: file.Error.Error()}})
			continue
		}
		if len(file.Inputs) == 0 {
			continue
		}

		rows := make([]MeasurementRow, 0, len(file.Inputs))
		for _, input := range file.Inputs {
			rows = append(rows, OutcomeToRow(input))
		}
		groups = append(groups, rows)
	}
	return groups
}

// OutcomeToRow converts a single input outcome to a table row.
func OutcomeToRow(outcome runner.InputOutcome) MeasurementRow {
	row := MeasurementRow{
		Input:      outcome.Input.Name,
		Compressed: strconv.Itoa(outcome.Input.Chars()),
		Flat:       lengthCell(outcome.Flat),
		Recursive:  lengthCell(outcome.Recursive),
		Markers:    strconv.Itoa(outcome.Markers()),
		Depth:      strconv.Itoa(outcome.Depth()),
		Ratio:      notMeasured,
	}

	switch {
	case outcome.Recursive != nil:
		row.Ratio = ratioCell(outcome.Recursive)
	case outcome.Flat != nil:
		row.Ratio = ratioCell(outcome.Flat)
	}

	if outcome.Error != nil {
		row.Error = outcome.Error.Error()
	}
	return row
}

func lengthCell(m *decompress.Measurement) string {
	if m == nil {
		return notMeasured
	}
	return m.String()
}

func ratioCell(m *decompress.Measurement) string {
	if m.Compressed == 0 {
		return notMeasured
	}
	return strconv.FormatFloat(m.Ratio(), 'f', 2, 64) + "x"
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	groups := MeasurementRows(result)
	if len(groups) == 0 {
		return ""
	}

	columns := []column{
		{title: "INPUT", flex: true},
		{title: "COMPRESSED", right: true},
		{title: "FLAT", right: true},
		{title: "RECURSIVE", right: true},
		{title: "MARKERS", right: true},
		{title: "DEPTH", right: true},
		{title: "RATIO", right: true},
	}

	rendered := make([][]tableRow, 0, len(groups))
	for _, group := range groups {
		rows := make([]tableRow, 0, len(group))
		for _, row := range group {
			if row.Error != "" {
				rows = append(rows, tableRow{cells: []string{row.Input}, message: "error: " + row.Error})
				continue
			}
			rows = append(rows, tableRow{cells: []string{
				row.Input, row.Compressed, row.Flat, row.Recursive, row.Markers, row.Depth, row.Ratio,
			}})
		}
		rendered = append(rendered, rows)
	}

	return t.render(columns, rendered, t.formatLegend())
}

// FormatMarkerTable formats a marker listing. Tokens are indented by depth.
func (t *TableFormatter) FormatMarkerTable(rows []MarkerRow) string {
	if len(rows) == 0 {
		return ""
	}

	columns := []column{
		{title: "OFFSET", right: true},
		{title: "DEPTH", right: true},
		{title: "MARKER"},
		{title: "CHARS", right: true},
		{title: "REPS", right: true},
		{title: "DATA", flex: true},
	}

	group := make([]tableRow, 0, len(rows))
	for _, row := range rows {
		token := strings.Repeat("  ", max(row.Depth-1, 0)) + row.Token
		group = append(group, tableRow{cells: []string{
			strconv.Itoa(row.Offset),
			strconv.Itoa(row.Depth),
			token,
			strconv.Itoa(row.Chars),
			strconv.Itoa(row.Reps),
			row.Data,
		}})
	}

	return t.render(columns, [][]tableRow{group}, "")
}

// render lays out groups of rows under the given columns.
func (t *TableFormatter) render(columns []column, groups [][]tableRow, legend string) string {
	t.calculateColumnWidths(columns, groups)

	totalWidth := calculateTotalWidth(columns)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(columns))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(totalWidth, heavySeparator))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(totalWidth, lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(columns, row, totalWidth))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(totalWidth, heavySeparator))
	builder.WriteString("\n")

	if legend != "" {
		builder.WriteString(legend)
		builder.WriteString("\n")
	}

	return builder.String()
}

// calculateColumnWidths sizes every column to its content, then shrinks the
// flex column until the table fits the terminal.
func (t *TableFormatter) calculateColumnWidths(columns []column, groups [][]tableRow) {
	for i := range columns {
		columns[i].width = len(columns[i].title)
	}

	for _, group := range groups {
		for _, row := range group {
			for i, cell := range row.cells {
				if i < len(columns) && len(cell) > columns[i].width {
					columns[i].width = len(cell)
				}
			}
		}
	}

	totalWidth := calculateTotalWidth(columns)
	if totalWidth <= t.termWidth {
		return
	}

	excess := totalWidth - t.termWidth
	for i := range columns {
		if columns[i].flex {
			floor := min(columns[i].width, max(minFlexWidth, len(columns[i].title)))
			columns[i].width = max(floor, columns[i].width-excess)
		}
	}
}

// calculateTotalWidth calculates the total table width from column widths.
func calculateTotalWidth(columns []column) int {
	total := 1
	for _, col := range columns {
		total += col.width
	}
	return total + tablePadding*(len(columns)-1)
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(columns []column) string {
	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.title
	}
	return t.styles.TableHeader.Render(layoutCells(columns, titles))
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

// formatRow formats a single row. Rows with a message use the error style.
func (t *TableFormatter) formatRow(columns []column, row tableRow, totalWidth int) string {
	if row.message == "" {
		return layoutCells(columns, row.cells)
	}

	first := columns[0]
	name := truncatePath(row.cells[0], first.width)
	remaining := totalWidth - 1 - first.width - tablePadding
	content := fmt.Sprintf(" %-*s  %s", first.width, name, truncateString(row.message, max(remaining, len(ellipsis))))
	return t.styles.TableErrorRow.Render(content)
}

// layoutCells pads and aligns cells to their column widths.
func layoutCells(columns []column, cells []string) string {
	var builder strings.Builder
	builder.WriteString(" ")

	for i, col := range columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if len(cell) > col.width {
			if col.flex && i == 0 {
				cell = truncatePath(cell, col.width)
			} else {
				cell = truncateString(cell, col.width)
			}
		}

		if i > 0 {
			builder.WriteString(strings.Repeat(" ", tablePadding))
		}

		switch {
		case col.right:
			fmt.Fprintf(&builder, "%*s", col.width, cell)
		case i == len(columns)-1:
			builder.WriteString(cell)
		default:
			fmt.Fprintf(&builder, "%-*s", col.width, cell)
		}
	}

	return builder.String()
}

// formatLegend explains the table columns.
func (t *TableFormatter) formatLegend() string {
	legend := fmt.Sprintf(" Legend: FLAT = v1  RECURSIVE = v2  RATIO = decompressed/compressed  %s = not measured",
		notMeasured)
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(legend)
	}
	return t.styles.TableLegend.Render(legend+"  ") + t.styles.TableErrorRow.Render("failed")
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		fmt.Sprintf("%d %s", stats.InputsMeasured, plural(stats.InputsMeasured, "input")),
		fmt.Sprintf("%d %s", stats.FilesProcessed, plural(stats.FilesProcessed, "file")),
	}

	if stats.InputsFailed > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.InputsFailed)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	parts = append(parts, fmt.Sprintf("%d %s", stats.MarkersTotal, plural(stats.MarkersTotal, "marker")))

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}

// truncatePath truncates a path, preserving the end (file name) rather than the beginning.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[len(path)-maxLen:]
	}
	return ellipsis + path[len(path)-maxLen+len(ellipsis):]
}

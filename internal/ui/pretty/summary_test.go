package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/markerlen/internal/ui/pretty"
	"github.com/yaklabco/markerlen/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  3,
		FilesErrored:    1,
		InputsMeasured:  5,
		InputsFailed:    2,
		MarkersTotal:    17,
		MaxDepth:        3,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files discovered:  4")
	assert.Contains(t, result, "Files read:        3")
	assert.Contains(t, result, "Files unreadable:  1")
	assert.Contains(t, result, "Inputs measured:   5")
	assert.Contains(t, result, "Inputs failed:     2")
	assert.Contains(t, result, "Markers decoded:   17")
	assert.Contains(t, result, "Deepest nesting:   3")
	assert.Contains(t, result, "Measurement failed")
}

func TestFormatSummary_NoFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesDiscovered: 1,
		FilesProcessed:  1,
		InputsMeasured:  1,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Measurement complete")
	assert.NotContains(t, result, "Files unreadable:")
	assert.NotContains(t, result, "Inputs failed:")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing measured",
			stats: runner.Stats{},
			want:  "No inputs measured\n",
		},
		{
			name:  "single input",
			stats: runner.Stats{FilesProcessed: 1, InputsMeasured: 1, MarkersTotal: 1, MaxDepth: 1},
			want:  "OK 1 input measured in 1 file, 1 marker, max depth 1\n",
		},
		{
			name: "failures",
			stats: runner.Stats{
				FilesProcessed: 3,
				FilesErrored:   1,
				InputsMeasured: 4,
				InputsFailed:   1,
				MarkersTotal:   17,
				MaxDepth:       3,
			},
			want: "4 inputs measured in 3 files, 1 failed, 1 file unreadable, 17 markers, max depth 3\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats))
		})
	}
}

package runner_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markerlen/pkg/config"
	"github.com/yaklabco/markerlen/pkg/decompress"
	"github.com/yaklabco/markerlen/pkg/marker"
	"github.com/yaklabco/markerlen/pkg/runner"
	"github.com/yaklabco/markerlen/pkg/source"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{
		"a.txt":     "X(8x2)(3x3)ABCY\n",
		"b.txt":     "(27x12)(20x12)(13x14)(7x10)(1x12)A",
		"broken.in": "AB(5x2)XY",
		"doc.md":    "```\n(3x3)XYZ\n```\n\n```markers\nA(1x5)BC\n```\n",
	})

	r := runner.New(nil)
	result, err := r.Run(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"."},
		Jobs:       3,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 4)

	paths := rel(t, root, func() []string {
		var out []string
		for _, f := range result.Files {
			out = append(out, f.Path)
		}
		return out
	}())
	assert.Equal(t, []string{"a.txt", "b.txt", "broken.in", "doc.md"}, paths)

	a := result.Files[0].Inputs[0]
	require.NoError(t, a.Error)
	assert.Equal(t, "18", a.Flat.String())
	assert.Equal(t, "20", a.Recursive.String())

	b := result.Files[1].Inputs[0]
	assert.Equal(t, "241920", b.Recursive.String())
	assert.Equal(t, 5, b.Depth())

	broken := result.Files[2].Inputs[0]
	require.ErrorIs(t, broken.Error, marker.ErrTruncatedMarker)
	assert.Nil(t, broken.Flat)
	assert.Nil(t, broken.Recursive)

	doc := result.Files[3]
	require.Len(t, doc.Inputs, 2)
	assert.Equal(t, "9", doc.Inputs[0].Recursive.String())
	assert.Equal(t, "7", doc.Inputs[1].Flat.String())

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  4,
		InputsMeasured:  4,
		InputsFailed:    1,
		MarkersTotal:    2 + 5 + 1 + 1,
		MaxDepth:        5,
	}, result.Stats)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Failures())
}

func TestRunner_Run_FileErrors(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{
		"good.txt":   "ADVENT",
		"binary.txt": "A\x00B",
	})

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: root, Paths: []string{"."}})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	require.ErrorIs(t, result.Files[0].Error, source.ErrBinaryInput)
	assert.Empty(t, result.Files[0].Inputs)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_Stdin(t *testing.T) {
	t.Parallel()

	r := runner.New(nil)
	r.Stdin = strings.NewReader("A(2x2)BCD(2x2)EFG\n")

	result, err := r.Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"-"},
		Mode:       config.ModeFlat,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	input := result.Files[0].Inputs[0]
	assert.Equal(t, source.StdinName, input.Input.Name)
	assert.Equal(t, "11", input.Flat.String())
	assert.Nil(t, input.Recursive, "flat mode skips the recursive calculator")
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"data.bin": "x"})

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: root, Paths: []string{"."}})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"input.txt": "ADVENT"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(nil).Run(ctx, runner.Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMeasureInput(t *testing.T) {
	t.Parallel()

	input := source.Input{Name: "nested", Text: "(11x1)(6x1)(1x1)A"}

	t.Run("both", func(t *testing.T) {
		t.Parallel()

		out := runner.MeasureInput(input, config.ModeBoth, decompress.Limits{})
		require.NoError(t, out.Error)
		assert.Equal(t, "11", out.Flat.String())
		assert.Equal(t, "1", out.Recursive.String())
		assert.Equal(t, 3, out.Markers())
		assert.Equal(t, 3, out.Depth())
	})

	t.Run("depth limit keeps flat result", func(t *testing.T) {
		t.Parallel()

		out := runner.MeasureInput(input, config.ModeBoth, decompress.Limits{MaxDepth: 2})
		require.ErrorIs(t, out.Error, decompress.ErrDepthExceeded)
		assert.Equal(t, "11", out.Flat.String())
		assert.Nil(t, out.Recursive)
	})

	t.Run("recursive only", func(t *testing.T) {
		t.Parallel()

		out := runner.MeasureInput(input, config.ModeRecursive, decompress.Limits{})
		assert.Nil(t, out.Flat)
		assert.Equal(t, "1", out.Recursive.String())
	})
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	inputs := []source.Input{
		{Name: "ADVENT", Origin: "arg1", Text: "ADVENT"},
		{Name: "(9x1)", Origin: "arg2", Text: "(9x1)"},
	}

	result := runner.Evaluate(inputs, runner.Options{})
	require.Len(t, result.Files, 2)
	assert.Equal(t, "arg1", result.Files[0].Path)
	assert.Equal(t, "6", result.Files[0].Inputs[0].Recursive.String())
	require.ErrorIs(t, result.Files[1].Inputs[0].Error, marker.ErrTruncatedMarker)
	assert.Equal(t, 1, result.Stats.InputsMeasured)
	assert.Equal(t, 1, result.Stats.InputsFailed)
}

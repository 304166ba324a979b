package cli

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/markerlen/internal/logging"
	"github.com/yaklabco/markerlen/internal/ui/pretty"
	"github.com/yaklabco/markerlen/pkg/config"
	"github.com/yaklabco/markerlen/pkg/marker"
	"github.com/yaklabco/markerlen/pkg/source"
)

// markerDataPreview bounds the data shown for each marker.
const markerDataPreview = 64

type markersFlags struct {
	depth          int
	format         string
	keepWhitespace bool
}

func newMarkersCommand() *cobra.Command {
	flags := &markersFlags{}

	cmd := &cobra.Command{
		Use:   "markers <path|->",
		Short: "List the markers of one input",
		Long: `List the markers of one input with their offsets, counts and data.

By default only top-level markers are listed, which is what format v1 decodes.
--depth N descends into data regions up to N levels, the way format v2 does;
nested markers are indented under their parent.

Examples:
  markerlen markers input.txt
  markerlen markers --depth 3 input.txt
  echo 'X(8x2)(3x3)ABCY' | markerlen markers --depth 2 -
  markerlen markers --format json notes.md`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarkers(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.depth, "depth", 1, "nesting levels to list (1 = top level only)")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json")
	cmd.Flags().BoolVar(&flags.keepWhitespace, "keep-whitespace", false, "keep whitespace instead of stripping it")

	return cmd
}

// markerEntry is one listed marker.
type markerEntry struct {
	Offset int    `json:"offset"`
	Depth  int    `json:"depth"`
	Token  string `json:"token"`
	Chars  int    `json:"chars"`
	Reps   int    `json:"reps"`
	Data   string `json:"data"`
}

// markerListing is the JSON document for one input.
type markerListing struct {
	Input   string        `json:"input"`
	Markers []markerEntry `json:"markers"`
	Error   string        `json:"error,omitempty"`
}

func runMarkers(cmd *cobra.Command, path string, flags *markersFlags) error {
	if flags.depth < 1 {
		return usageError(fmt.Errorf("invalid --depth %d: must be at least 1", flags.depth))
	}
	if flags.format != "table" && flags.format != "json" {
		return usageError(fmt.Errorf("invalid --format %q: must be table or json", flags.format))
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, _, err := loadConfig(cmd, &config.Config{KeepWhitespace: flags.keepWhitespace})
	if err != nil {
		return err
	}

	inputs, err := loadOne(ctx, cmd.InOrStdin(), newLoader(cfg), path)
	if err != nil {
		return err
	}

	depth := min(flags.depth, cfg.Limits.MaxDepth)
	listings := make([]markerListing, 0, len(inputs))
	failed := false

	for _, input := range inputs {
		entries, err := listMarkers(input.Text, depth)
		listing := markerListing{Input: input.Name, Markers: entries}
		if err != nil {
			listing.Error = err.Error()
			failed = true
		}
		logger.Debug("markers listed", logging.FieldInput, input.Name, logging.FieldMarkers, len(entries))
		listings = append(listings, listing)
	}

	if flags.format == "json" {
		err = writeMarkersJSON(cmd.OutOrStdout(), listings)
	} else {
		err = writeMarkersTable(cmd, listings)
	}
	if err != nil {
		return err
	}

	if failed {
		return ErrMeasureFailed
	}
	return nil
}

// loadOne reads a single path, or standard input for "-".
func loadOne(ctx context.Context, stdin io.Reader, loader *source.Loader, path string) ([]source.Input, error) {
	if path == source.StdinName {
		inputs, err := loader.LoadReader(ctx, source.StdinName, stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return inputs, nil
	}

	inputs, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	return inputs, nil
}

// window is a region of the input whose markers are yet to be listed.
type window struct {
	lo, hi int
	depth  int
}

// listMarkers returns the markers of s in document order, descending into
// data regions up to maxDepth levels. Markers found before a format error
// are returned along with it. Offsets are character offsets.
func listMarkers(s string, maxDepth int) ([]markerEntry, error) {
	var entries []markerEntry

	runes := []rune(s)
	s = marker.Fold(s)

	stack := []window{{lo: 0, hi: len(s), depth: 1}}
	for len(stack) > 0 {
		win := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for m, err := range marker.MarkersIn(s, win.lo, win.hi) {
			if err != nil {
				sortByOffset(entries)
				return entries, err //nolint:wrapcheck // FormatError carries its own context.
			}

			data := dataPreview(runes[m.End:m.DataEnd()])
			entries = append(entries, markerEntry{
				Offset: m.Start,
				Depth:  win.depth,
				Token:  m.Token(s),
				Chars:  m.Chars,
				Reps:   m.Reps,
				Data:   data,
			})

			if win.depth < maxDepth && m.Chars > 0 {
				stack = append(stack, window{lo: m.End, hi: m.DataEnd(), depth: win.depth + 1})
			}
		}
	}

	sortByOffset(entries)
	return entries, nil
}

// dataPreview renders a data region, cut to markerDataPreview characters.
func dataPreview(region []rune) string {
	if len(region) > markerDataPreview {
		return string(region[:markerDataPreview]) + "..."
	}
	return string(region)
}

// sortByOffset puts entries in document order. A nested marker lies between
// its parent and the parent's next sibling.
func sortByOffset(entries []markerEntry) {
	slices.SortFunc(entries, func(a, b markerEntry) int { return cmp.Compare(a.Offset, b.Offset) })
}

func writeMarkersJSON(w io.Writer, listings []markerListing) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(listings); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func writeMarkersTable(cmd *cobra.Command, listings []markerListing) error {
	out := cmd.OutOrStdout()

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	colorEnabled := pretty.IsColorEnabled(colorMode, out)
	styles := pretty.NewStyles(colorEnabled)
	formatter := pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(out))

	for i, listing := range listings {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, styles.InputName.Render(listing.Input))

		rows := make([]pretty.MarkerRow, 0, len(listing.Markers))
		for _, entry := range listing.Markers {
			rows = append(rows, pretty.MarkerRow(entry))
		}

		if len(rows) == 0 {
			fmt.Fprintln(out, styles.Dim.Render("  no markers"))
		} else {
			fmt.Fprint(out, formatter.FormatMarkerTable(rows))
		}

		if listing.Error != "" {
			fmt.Fprintln(out, styles.Error.Render("  error: "+listing.Error))
		}
	}

	return nil
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			return width
		}
	}
	return 0
}

package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/bndr/gotabulate"

	"github.com/opd-ai/go-gradient/internal/config"
	"github.com/opd-ai/go-gradient/internal/gradient"
	"github.com/opd-ai/go-gradient/internal/render"
)

// listRow is one step of the rotation as the view will draw it.
type listRow struct {
	source    string
	names     []string
	direction gradient.Direction
	kind      gradient.Type
}

// rotation returns the frames, or the palette rows when no frames are set,
// or the default gradient.
func rotation(cfg *config.Config) ([]listRow, error) {
	frames, err := cfg.GradientFrames()
	if err != nil {
		return nil, err
	}
	if len(frames) > 0 {
		rows := make([]listRow, len(frames))
		for i, f := range frames {
			rows[i] = listRow{fmt.Sprintf("frame %d", i), f.Colors(), f.Direction(), f.Type()}
		}
		return rows, nil
	}

	dir, err := cfg.Animation.ParsedDirection()
	if err != nil {
		return nil, err
	}
	kind, err := cfg.Animation.ParsedType()
	if err != nil {
		return nil, err
	}
	if len(cfg.Palette) == 0 {
		return []listRow{{"default", nil, dir, kind}}, nil
	}
	rows := make([]listRow, len(cfg.Palette))
	for i, names := range cfg.Palette {
		rows[i] = listRow{fmt.Sprintf("palette %d", i), names, dir, kind}
	}
	return rows, nil
}

// frameTable renders the resolved rotation as a grid table: every row padded
// to the longest stop count, with its locations and anchors.
func frameTable(cfg *config.Config) (string, error) {
	rows, err := rotation(cfg)
	if err != nil {
		return "", err
	}

	resolved := make([][]color.RGBA, len(rows))
	counts := make([]int, len(rows))
	for i, r := range rows {
		resolved[i], _ = render.ResolveColors(r.names)
		counts[i] = len(resolved[i])
	}
	n := gradient.LongestStopCount(counts...)

	table := make([][]any, 0, len(rows))
	for i, r := range rows {
		stops, locations := gradient.Stops(resolved[i], n)
		start, end := gradient.AnchorsFor(r.direction, r.kind)
		table = append(table, []any{
			r.source,
			hexList(stops),
			formatLocations(locations),
			r.direction.String(),
			r.kind.String(),
			fmt.Sprintf("(%.1f,%.1f) -> (%.1f,%.1f)", start.X, start.Y, end.X, end.Y),
		})
	}

	t := gotabulate.Create(table)
	t.SetHeaders([]string{"step", "colors", "locations", "direction", "type", "anchors"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	return t.Render("grid"), nil
}

func hexList(colors []color.RGBA) string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = render.ToHex(c)
	}
	return strings.Join(out, " ")
}

func formatLocations(locs []float64) string {
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = strconv.FormatFloat(l, 'f', 3, 64)
	}
	return strings.Join(parts, " ")
}

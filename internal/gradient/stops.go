package gradient

import "image/color"

// MinStops is the smallest stop count ever handed to a layer.
const MinStops = 2

// DefaultColors is the fallback gradient used when a frame or palette row
// resolves to no colors at all.
var DefaultColors = []color.RGBA{
	{R: 0x4A, G: 0x90, B: 0xE2, A: 0xFF},
	{R: 0x90, G: 0x13, B: 0xFE, A: 0xFF},
}

// LongestStopCount returns the largest of counts, floored at MinStops.
func LongestStopCount(counts ...int) int {
	longest := MinStops
	for _, n := range counts {
		if n > longest {
			longest = n
		}
	}
	return longest
}

// PadColors returns a copy of colors extended to n entries by repeating the
// last color. An empty list is replaced by DefaultColors first. Lists that
// are already n entries or longer are copied unchanged.
func PadColors(colors []color.RGBA, n int) []color.RGBA {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	size := len(colors)
	if n > size {
		size = n
	}
	out := make([]color.RGBA, size)
	copy(out, colors)
	last := colors[len(colors)-1]
	for i := len(colors); i < size; i++ {
		out[i] = last
	}
	return out
}

// Locations returns n evenly spaced stop locations in [0, 1].
// The first location is pinned to 0.0 and the last to 1.0; fewer than three
// stops never produce intermediate locations.
func Locations(n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{0}
	case n == 2:
		return []float64{0, 1}
	}

	locs := make([]float64, n)
	step := 1.0 / float64(n-1)
	for i := 1; i < n-1; i++ {
		locs[i] = float64(i) * step
	}
	locs[0] = 0
	locs[n-1] = 1
	return locs
}

// DedupeLocations removes the intermediate locations that padding would
// otherwise spend on repeated trailing colors. The gradient is re-spaced over
// the first distinct stops and the remaining entries are pinned to 1.0 so the
// result keeps len(locations) entries.
func DedupeLocations(locations []float64, distinct int) []float64 {
	n := len(locations)
	if distinct >= n || n == 0 {
		out := make([]float64, n)
		copy(out, locations)
		return out
	}
	if distinct < MinStops {
		distinct = MinStops
	}

	out := make([]float64, 0, n)
	out = append(out, Locations(distinct)...)
	for len(out) < n {
		out = append(out, 1)
	}
	return out
}

// Stops pads colors to n entries and returns the matching location array.
// Locations are computed for the padded count and then deduplicated so the
// original colors span the whole gradient axis.
func Stops(colors []color.RGBA, n int) ([]color.RGBA, []float64) {
	if n < MinStops {
		n = MinStops
	}
	distinct := len(colors)
	if distinct == 0 {
		distinct = len(DefaultColors)
	}
	padded := PadColors(colors, n)
	locs := DedupeLocations(Locations(len(padded)), distinct)
	return padded, locs
}

package ui

import (
	"math"
	"strings"
)

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline renders the last width values of data. Values are scaled
// between lo and hi; when lo == hi the range is taken from the data.
// Short series are left-padded so the newest sample is always rightmost.
func sparkline(data []float64, width int, lo, hi float64) string {
	if len(data) == 0 || width <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	if lo == hi {
		lo, hi = data[0], data[0]
		for _, v := range data {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(data)))
	for _, v := range data {
		if hi == lo {
			b.WriteRune(sparkBlocks[0])
			continue
		}
		n := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
		b.WriteRune(sparkBlocks[int(n*float64(len(sparkBlocks)-1))])
	}
	return b.String()
}

package mds

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/mdscale/dissim"
)

// maxLoggedRow caps how many entries of the representative row are logged.
const maxLoggedRow = 16

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// representativeRow picks the row to attach to a fallback diagnostic: the one
// with the most off-diagonal entries within eps of zero (duplicate items),
// earliest index on ties. Row 0 when nothing stands out.
func representativeRow(d [][]float64, eps float64) int {
	best, bestCount := 0, -1
	var i, j, count int
	for i = range d {
		count = 0
		for j = range d[i] {
			if i != j && d[i][j] <= eps {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// reportFallback writes one warning describing a fallback layout.
func reportFallback(l *log.Logger, d [][]float64, eps float64, reason error) {
	idx := representativeRow(d, eps)
	row := dissim.RowOf(d, idx)
	truncated := false
	if len(row) > maxLoggedRow {
		row = row[:maxLoggedRow]
		truncated = true
	}
	l.Warn("mds: embedding failed, using random layout",
		"items", len(d),
		"reason", reason,
		"row_index", idx,
		"row", row,
		"row_truncated", truncated,
	)
}

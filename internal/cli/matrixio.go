package cli

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/mdscale/mds"
)

// Matrix and coordinate encodings.
const (
	formatAuto = "auto"
	formatCSV  = "csv"
	formatJSON = "json"
)

var errFormat = errors.New("unknown format")

// inputFormat resolves "auto" from the file extension, or by sniffing the
// first non-blank byte for stdin ('[' means JSON).
func inputFormat(flag, path string, br *bufio.Reader) (string, error) {
	switch flag {
	case formatCSV, formatJSON:
		return flag, nil
	case formatAuto, "":
	default:
		return "", fmt.Errorf("input %q: %w", flag, errFormat)
	}
	if path != "" {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return formatJSON, nil
		}
		return formatCSV, nil
	}
	for {
		b, err := br.Peek(1)
		if err != nil {
			return formatCSV, nil
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = br.ReadByte()
			continue
		case '[':
			return formatJSON, nil
		default:
			return formatCSV, nil
		}
	}
}

// readMatrix decodes a dissimilarity matrix. CSV rows are one matrix row per
// line; blank lines and lines starting with '#' are skipped.
func readMatrix(r io.Reader, format string) ([][]float64, error) {
	switch format {
	case formatJSON:
		var d [][]float64
		dec := json.NewDecoder(r)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return d, nil
	case formatCSV:
		return readCSV(r)
	default:
		return nil, fmt.Errorf("input %q: %w", format, errFormat)
	}
}

func readCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	d := make([][]float64, 0, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("decode csv: row %d col %d: %w", i, j, err)
			}
			row[j] = v
		}
		d = append(d, row)
	}
	return d, nil
}

// writeResult encodes coordinates. JSON uses {"x","y"} objects for planar
// output and plain arrays otherwise; CSV writes one row per item.
func writeResult(w io.Writer, res *mds.Result, dims int, format string) error {
	switch format {
	case formatJSON, formatAuto, "":
		enc := json.NewEncoder(w)
		if dims == 2 {
			return enc.Encode(res.Points())
		}
		return enc.Encode(res.Coords)
	case formatCSV:
		var buf bytes.Buffer
		cw := csv.NewWriter(&buf)
		rec := make([]string, dims)
		for _, row := range res.Coords {
			for c, v := range row {
				rec[c] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("output %q: %w", format, errFormat)
	}
}

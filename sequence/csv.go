package sequence

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/irbview/intensity"
)

// decodeCSV reads one frame of comma or semicolon separated samples, one row per line
// Decimal commas are accepted when the separator is a semicolon
func decodeCSV(r io.Reader) (*intensity.Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(strings.NewReader(string(data)))
	sep := separator(string(data))
	cr.Comma = sep
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	var (
		samples []float32
		width   int
		height  int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}

		// Tolerate one trailing separator per row
		if n := len(rec); n > 1 && strings.TrimSpace(rec[n-1]) == "" {
			rec = rec[:n-1]
		}

		if height == 0 {
			width = len(rec)
		} else if len(rec) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrCorrupt, height+1, len(rec), width)
		}

		for col, field := range rec {
			field = strings.TrimSpace(field)
			if sep == ';' {
				field = strings.Replace(field, ",", ".", 1)
			}
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %q", ErrCorrupt, height+1, col+1, field)
			}
			samples = append(samples, float32(v))
		}
		height++
	}

	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrCorrupt)
	}
	return &intensity.Frame{Width: width, Height: height, Data: samples}, nil
}

// separator picks ';' when the first data line carries one, ',' otherwise
func separator(data string) rune {
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ";") {
			return ';'
		}
		return ','
	}
	return ','
}

package series

import (
	"fmt"
	"strings"
	"time"

	"github.com/avoronkov/csvcursor"
)

// DateLayout is the month/day/two-digit-year format the time-series files
// use for their date columns (e.g. "1/22/20").
const DateLayout = "1/2/06"

// Header describes the layout of a time-series CSV: where the location
// columns sit and which columns carry per-date counts.
type Header struct {
	// CountryCol, StateCol index the country and state columns.
	CountryCol int
	StateCol   int
	// CountyCol indexes the county column, -1 when the file has none
	// (the global file carries no county breakdown).
	CountyCol int
	// FirstDateCol indexes the first date column; every column from there
	// to the end of the header is a date.
	FirstDateCol int
	// Dates holds the parsed date columns in file order.
	Dates []time.Time
}

// ReadHeader consumes the header line of r field by field. Location columns
// are recognized by name (slash and underscore spellings both accepted);
// the date span starts at the first column that parses as a date and must
// run to the end of the line.
func ReadHeader(r *csvcursor.Reader) (*Header, error) {
	h := &Header{
		CountryCol:   -1,
		StateCol:     -1,
		CountyCol:    -1,
		FirstDateCol: -1,
	}

	for {
		ok, err := r.ReadField()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if !ok {
			break
		}

		name := r.Field()
		if r.FieldIndex() == 0 {
			// Some published files start with a UTF-8 BOM.
			name = strings.TrimPrefix(name, "\uFEFF")
		}

		if h.FirstDateCol >= 0 {
			date, err := time.Parse(DateLayout, name)
			if err != nil {
				return nil, fmt.Errorf("header column %d: %q follows the date columns but is not a date", r.FieldIndex(), name)
			}
			h.Dates = append(h.Dates, date)
			continue
		}

		switch {
		case strings.EqualFold(name, "Country/Region") || strings.EqualFold(name, "Country_Region"):
			h.CountryCol = r.FieldIndex()
		case strings.EqualFold(name, "Province/State") || strings.EqualFold(name, "Province_State"):
			h.StateCol = r.FieldIndex()
		case strings.EqualFold(name, "Admin2"):
			h.CountyCol = r.FieldIndex()
		default:
			if date, err := time.Parse(DateLayout, name); err == nil {
				h.FirstDateCol = r.FieldIndex()
				h.Dates = append(h.Dates, date)
			}
			// Anything else (UID, FIPS, Lat, Long...) is ignored.
		}
	}

	if h.CountryCol < 0 {
		return nil, fmt.Errorf("header has no country column")
	}
	if h.StateCol < 0 {
		return nil, fmt.Errorf("header has no state column")
	}
	if h.FirstDateCol < 0 {
		return nil, fmt.Errorf("header has no date columns")
	}
	return h, nil
}

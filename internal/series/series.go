package series

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avoronkov/csvcursor"
)

// Filter selects the rows whose counts are summed. Country is required;
// State narrows within the country and County within the state. Matching is
// case-insensitive.
type Filter struct {
	Country string
	State   string
	County  string
}

func (f Filter) validate() error {
	if f.Country == "" {
		return errors.New("a country is required")
	}
	if f.County != "" && f.State == "" {
		return errors.New("a county filter requires a state")
	}
	return nil
}

// Series holds per-date cumulative totals summed across the matched rows.
type Series struct {
	Dates  []time.Time
	Totals []int64
	// Matched counts the rows that contributed to the totals.
	Matched int
}

// Delta returns the day-over-day change at index i.
func (s *Series) Delta(i int) int64 {
	if i == 0 {
		return s.Totals[0]
	}
	return s.Totals[i] - s.Totals[i-1]
}

// locationCol pairs a column index with the filter value it must match;
// an empty want matches any row value.
type locationCol struct {
	col  int
	want string
}

// Accumulate reads the header line and then every data row from r, summing
// the date columns of the rows the filter matches. Location columns are
// reached with skip reads, so unrelated columns are never materialized.
func Accumulate(r *csvcursor.Reader, f Filter) (*Series, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if f.County != "" && h.CountyCol < 0 {
		return nil, errors.New("this file has no county column")
	}

	cols := []locationCol{
		{col: h.CountryCol, want: f.Country},
		{col: h.StateCol, want: f.State},
	}
	if h.CountyCol >= 0 {
		cols = append(cols, locationCol{col: h.CountyCol, want: f.County})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].col < cols[j].col })

	s := &Series{
		Dates:  h.Dates,
		Totals: make([]int64, len(h.Dates)),
	}

	for {
		more, err := r.NextLine()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.LineIndex(), err)
		}
		if !more {
			break
		}

		match := true
		for _, lc := range cols {
			ok, err := r.ReadFieldSkip(lc.col - r.FieldIndex() - 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", r.LineIndex(), err)
			}
			if !ok {
				return nil, fmt.Errorf("line %d: too few columns", r.LineIndex())
			}
			if lc.want != "" && !strings.EqualFold(r.Field(), lc.want) {
				match = false
				break
			}
		}
		if !match {
			continue
		}

		ok, err := r.ReadFieldSkip(h.FirstDateCol - r.FieldIndex() - 1)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.LineIndex(), err)
		}
		for i := range h.Dates {
			if i > 0 {
				ok, err = r.ReadField()
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", r.LineIndex(), err)
				}
			}
			if !ok {
				return nil, fmt.Errorf("line %d: expected %d date columns, found %d", r.LineIndex(), len(h.Dates), i)
			}

			value := r.Field()
			if value == "" {
				continue
			}
			count, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: bad count %q", r.LineIndex(), r.FieldIndex(), value)
			}
			s.Totals[i] += count
		}
		s.Matched++
	}

	return s, nil
}

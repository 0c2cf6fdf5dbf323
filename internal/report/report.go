// Package report renders accumulated time series as tables: aligned text for
// terminals, CSV for further processing.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/avoronkov/csvcursor"
	"github.com/avoronkov/csvcursor/internal/series"
)

// Column is one named series in a table, e.g. "confirmed" or "deaths".
type Column struct {
	Name   string
	Series *series.Series
}

// Table merges columns sharing one date axis.
type Table struct {
	dates   []time.Time
	columns []Column
}

// New builds a Table from the given columns, which must agree on their dates.
func New(columns ...Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New("report: no columns")
	}

	dates := columns[0].Series.Dates
	for _, c := range columns[1:] {
		if len(c.Series.Dates) != len(dates) {
			return nil, fmt.Errorf("report: column %q has %d dates, %q has %d",
				c.Name, len(c.Series.Dates), columns[0].Name, len(dates))
		}
		for i := range dates {
			if !c.Series.Dates[i].Equal(dates[i]) {
				return nil, fmt.Errorf("report: columns %q and %q disagree on date %d",
					columns[0].Name, c.Name, i)
			}
		}
	}

	return &Table{dates: dates, columns: columns}, nil
}

// WriteText renders the table with aligned columns: one row per date, a
// total and a day-over-day change per series.
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "DATE")
	for _, c := range t.columns {
		fmt.Fprintf(tw, "\t%s\tNEW", strings.ToUpper(c.Name))
	}
	fmt.Fprintln(tw)

	for i, date := range t.dates {
		fmt.Fprint(tw, date.Format("2006-01-02"))
		for _, c := range t.columns {
			fmt.Fprintf(tw, "\t%d\t%+d", c.Series.Totals[i], c.Series.Delta(i))
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// WriteCSV emits the same rows as CSV, one column pair per series.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csvcursor.NewWriter(w)

	header := []string{"date"}
	for _, c := range t.columns {
		header = append(header, c.Name, c.Name+"_new")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for i, date := range t.dates {
		record = record[:0]
		record = append(record, date.Format("2006-01-02"))
		for _, c := range t.columns {
			record = append(record,
				strconv.FormatInt(c.Series.Totals[i], 10),
				strconv.FormatInt(c.Series.Delta(i), 10))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	return cw.Flush()
}

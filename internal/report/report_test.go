package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/avoronkov/csvcursor/internal/series"
)

func testDates() []time.Time {
	return []time.Time{
		time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 23, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 24, 0, 0, 0, 0, time.UTC),
	}
}

func TestTableWriteCSV(t *testing.T) {
	t.Parallel()

	confirmed := &series.Series{Dates: testDates(), Totals: []int64{1, 4, 9}}
	deaths := &series.Series{Dates: testDates(), Totals: []int64{0, 0, 2}}

	table, err := New(
		Column{Name: "confirmed", Series: confirmed},
		Column{Name: "deaths", Series: deaths},
	)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}

	want := "date,confirmed,confirmed_new,deaths,deaths_new\n" +
		"2020-01-22,1,1,0,0\n" +
		"2020-01-23,4,3,0,0\n" +
		"2020-01-24,9,5,2,2\n"
	if got := buf.String(); got != want {
		t.Errorf("CSV output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTableWriteText(t *testing.T) {
	t.Parallel()

	confirmed := &series.Series{Dates: testDates(), Totals: []int64{1, 4, 9}}

	table, err := New(Column{Name: "confirmed", Series: confirmed})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := table.WriteText(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("output has %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "DATE") || !strings.Contains(lines[0], "CONFIRMED") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "2020-01-23") || !strings.Contains(lines[2], "+3") {
		t.Errorf("second row = %q, want date and +3 delta", lines[2])
	}
}

func TestNewRejectsMismatchedDates(t *testing.T) {
	t.Parallel()

	a := &series.Series{Dates: testDates(), Totals: []int64{1, 2, 3}}
	b := &series.Series{Dates: testDates()[:2], Totals: []int64{1, 2}}

	if _, err := New(Column{Name: "a", Series: a}, Column{Name: "b", Series: b}); err == nil {
		t.Fatal("New succeeded with mismatched date axes")
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := New(); err == nil {
		t.Fatal("New succeeded with no columns")
	}
}

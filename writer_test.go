package csvcursor

import (
	"bytes"
	"testing"
)

func TestWriterWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records [][]string
		config  func(*Writer)
		want    string
	}{
		{
			name:    "basic",
			records: [][]string{{"a", "b", "c"}},
			want:    "a,b,c\n",
		},
		{
			name: "multipleRecords",
			records: [][]string{
				{"alpha", "beta"},
				{"gamma", "delta"},
			},
			want: "alpha,beta\ngamma,delta\n",
		},
		{
			name:    "emptyField",
			records: [][]string{{"", "b"}},
			want:    ",b\n",
		},
		{
			name:    "commaForcesQuote",
			records: [][]string{{"alpha,beta"}},
			want:    "\"alpha,beta\"\n",
		},
		{
			name:    "quoteDoubled",
			records: [][]string{{`say "hi"`}},
			want:    "\"say \"\"hi\"\"\"\n",
		},
		{
			name:    "crlfTerminator",
			records: [][]string{{"a", "b"}},
			config:  func(w *Writer) { w.UseCRLF = true },
			want:    "a,b\r\n",
		},
		{
			name:    "alwaysQuote",
			records: [][]string{{"a", "b"}},
			config:  func(w *Writer) { w.AlwaysQuote = true },
			want:    "\"a\",\"b\"\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := NewWriter(&buf)
			if tc.config != nil {
				tc.config(w)
			}

			if err := w.WriteAll(tc.records); err != nil {
				t.Fatalf("WriteAll: %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			if got := buf.String(); got != tc.want {
				t.Errorf("output = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		want  bool
	}{
		{"plain", false},
		{"", false},
		{" padded ", false},
		{"a,b", true},
		{`a"b`, true},
		{"a\nb", true},
		{"a\rb", true},
	}

	for _, tc := range tests {
		tc := tc
		if got := NeedsQuoting(tc.field); got != tc.want {
			t.Errorf("NeedsQuoting(%q) = %v, want %v", tc.field, got, tc.want)
		}
	}
}

func TestWriterReset(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	w := NewWriter(&first)
	w.AlwaysQuote = true

	if err := w.Write([]string{"a"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	w.Reset(&second)
	if err := w.Write([]string{"b"}); err != nil {
		t.Fatalf("Write after Reset: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush after Reset: %v", err)
	}

	if got := first.String(); got != "\"a\"\n" {
		t.Errorf("first output = %q, want %q", got, "\"a\"\n")
	}
	if got := second.String(); got != "\"b\"\n" {
		t.Errorf("second output = %q, want %q", got, "\"b\"\n")
	}
}

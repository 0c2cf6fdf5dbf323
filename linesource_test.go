package csvcursor

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestScanSourceLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lfTerminated",
			input: "one\ntwo\n",
			want:  []string{"one", "two"},
		},
		{
			name:  "crlfTerminated",
			input: "one\r\ntwo\r\n",
			want:  []string{"one", "two"},
		},
		{
			name:  "unterminatedFinalLine",
			input: "one\ntwo",
			want:  []string{"one", "two"},
		},
		{
			name:  "emptyLines",
			input: "\n\na\n",
			want:  []string{"", "", "a"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "loneCRPreserved",
			input: "a\rb\n",
			want:  []string{"a\rb"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src := NewScanSource(strings.NewReader(tc.input))

			var got []string
			for {
				line, err := src.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadLine: %v", err)
				}
				got = append(got, line)
			}

			if len(got) != len(tc.want) {
				t.Fatalf("lines = %q, want %q", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestScanSourceExhaustionIsSticky(t *testing.T) {
	t.Parallel()

	src := NewScanSource(strings.NewReader("only\n"))
	if _, err := src.ReadLine(); err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := src.ReadLine(); err != io.EOF {
			t.Fatalf("ReadLine %d after end: err = %v, want io.EOF", i, err)
		}
	}
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestReaderCloseReleasesSource(t *testing.T) {
	t.Parallel()

	rec := &closeRecorder{Reader: strings.NewReader("a\n")}
	r := NewReader(NewScanSource(rec))
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !rec.closed {
		t.Fatal("underlying reader was not closed")
	}
}

type failingSource struct{ err error }

func (f *failingSource) ReadLine() (string, error) { return "", f.err }

func TestReaderPropagatesSourceError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("stream reset")
	r := NewReader(&failingSource{err: wantErr})
	defer r.Close()

	if _, err := r.ReadField(); !errors.Is(err, wantErr) {
		t.Fatalf("ReadField error = %v, want %v", err, wantErr)
	}
	if _, err := r.NextLine(); !errors.Is(err, wantErr) {
		t.Fatalf("NextLine error = %v, want %v", err, wantErr)
	}
}

func TestStringsSource(t *testing.T) {
	t.Parallel()

	src := NewStringsSource("a", "b")
	for _, want := range []string{"a", "b"} {
		line, err := src.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if line != want {
			t.Errorf("line = %q, want %q", line, want)
		}
	}
	if _, err := src.ReadLine(); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

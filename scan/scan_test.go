package scan

import (
	"reflect"
	"strings"
	"testing"
)

func lines(s string) *Lines {
	l, err := New("test", strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return l
}

func TestNext(t *testing.T) {
	l := lines("one\ntwo\n")
	var got []string
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		got = append(got, line)
	}
	want := []string{"one", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	// reading past the end stays at the end
	for i := 0; i < 3; i++ {
		if _, ok := l.Next(); ok {
			t.Errorf("read past the end of the source")
		}
	}
	if l.Pos() != l.Len() {
		t.Errorf("got %v, wanted %v\n", l.Pos(), l.Len())
	}
}

// rewinding to a previously observed position must reproduce the
// same read, including the post-read position
func TestSeekTo(t *testing.T) {
	l := lines("one\ntwo\nthree\n")
	l.Next()
	p := l.Pos()
	first, _ := l.Next()
	after := l.Pos()
	l.SeekTo(p)
	again, _ := l.Next()
	if first != again {
		t.Errorf("got %q, wanted %q\n", again, first)
	}
	if l.Pos() != after {
		t.Errorf("got %v, wanted %v\n", l.Pos(), after)
	}
}

func TestBack(t *testing.T) {
	l := lines("one\ntwo\n")
	want, _ := l.Next()
	l.Back()
	got, _ := l.Next()
	if got != want {
		t.Errorf("got %q, wanted %q\n", got, want)
	}
}

func TestSeekPrefix(t *testing.T) {
	l := lines("junk\n  Orbital symmetries:\n Occupied\n")
	line, err := l.SeekPrefix("Orbital symmetries:")
	if err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	if line != "  Orbital symmetries:" {
		t.Errorf("got %q\n", line)
	}
	// cursor sits just past the match
	next, _ := l.Next()
	if next != " Occupied" {
		t.Errorf("got %q, wanted %q\n", next, " Occupied")
	}
}

func TestSeekPrefixNotFound(t *testing.T) {
	l := lines("one\ntwo\n")
	l.Next()
	start := l.Pos()
	_, err := l.SeekPrefix("missing")
	nf, ok := err.(*NotFoundError)
	if !ok {
		t.Fatalf("got %v, wanted a NotFoundError", err)
	}
	if nf.Name != "test" || nf.Start != start {
		t.Errorf("got %q at %d, wanted %q at %d\n",
			nf.Name, nf.Start, "test", start)
	}
}

func TestGather(t *testing.T) {
	tests := []struct {
		in    string
		kinds []Kind
		want  [][]string
		n     int
		next  string
	}{
		{
			in: "a 1 2\na 3\nb 4\nend\nafter\n",
			kinds: []Kind{
				{Match: Prefix("a"), Tokens: payload, Bucket: 0},
				{Match: Prefix("b"), Tokens: payload, Bucket: 1},
			},
			want: [][]string{{"1", "2", "3"}, {"4"}},
			n:    3,
			next: "end",
		},
		{
			// empty block: boundary line untouched
			in: "end\n",
			kinds: []Kind{
				{Match: Prefix("a"), Tokens: payload, Bucket: 0},
			},
			want: [][]string{nil},
			n:    0,
			next: "end",
		},
		{
			// block running into the end of the source
			in: "a 1\na 2\n",
			kinds: []Kind{
				{Match: Prefix("a"), Tokens: payload, Bucket: 0},
			},
			want: [][]string{{"1", "2"}},
			n:    2,
			next: "",
		},
	}
	for _, test := range tests {
		l := lines(test.in)
		got, n := l.Gather(test.kinds...)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("got %v, wanted %v\n", got, test.want)
		}
		if n != test.n {
			t.Errorf("got %v, wanted %v\n", n, test.n)
		}
		// the line that ended the block is readable again
		next, _ := l.Next()
		if next != test.next {
			t.Errorf("got %q, wanted %q\n", next, test.next)
		}
	}
}

func payload(line string) []string {
	return strings.Fields(line)[1:]
}

// Package scan provides the line-cursor primitives shared by the g16
// and qm4d output parsers. A quantum chemistry output file is loaded
// into a Lines cursor once, and the extraction functions in the
// program packages walk it forward, rewinding a single line where a
// block ends so the next extractor can pick up at the boundary.
package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Lines is a cursor over the lines of a text source. The whole
// source is read up front, so rewinding is an index decrement rather
// than a byte seek and is exact regardless of line endings. Name
// identifies the source in errors.
type Lines struct {
	Name  string
	lines []string
	pos   int
}

// New reads all of r into a Lines cursor named name.
func New(name string, r io.Reader) (*Lines, error) {
	scanner := bufio.NewScanner(r)
	l := &Lines{Name: name}
	for scanner.Scan() {
		l.lines = append(l.lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads the file at filename into a Lines cursor.
func Load(filename string) (*Lines, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return New(filename, f)
}

// Next returns the line under the cursor and advances past it. Once
// the cursor is past the last line it keeps returning false.
func (l *Lines) Next() (string, bool) {
	if l.pos >= len(l.lines) {
		return "", false
	}
	line := l.lines[l.pos]
	l.pos++
	return line, true
}

// Back un-reads the line just returned by a successful Next, leaving
// the cursor positioned to return it again.
func (l *Lines) Back() {
	if l.pos > 0 {
		l.pos--
	}
}

// Pos returns the current cursor position for use with SeekTo.
func (l *Lines) Pos() int { return l.pos }

// SeekTo moves the cursor to a position previously returned by Pos.
func (l *Lines) SeekTo(pos int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(l.lines) {
		pos = len(l.lines)
	}
	l.pos = pos
}

// Len returns the total number of lines in the source.
func (l *Lines) Len() int { return len(l.lines) }

// Prefix returns a predicate matching lines that start with prefix
// after trimming surrounding whitespace.
func Prefix(prefix string) func(string) bool {
	return func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), prefix)
	}
}

// Contains returns a predicate matching lines that contain substr.
func Contains(substr string) func(string) bool {
	return func(line string) bool {
		return strings.Contains(line, substr)
	}
}

// SeekFunc advances the cursor until match returns true for a line
// and returns that line, leaving the cursor just past it. If the
// source ends first it returns a NotFoundError naming what, the
// thing sought, and where the search began.
func (l *Lines) SeekFunc(match func(string) bool, what string) (string, error) {
	start := l.pos
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		if match(line) {
			return line, nil
		}
	}
	return "", &NotFoundError{
		Name:  l.Name,
		Start: start,
		Msg:   fmt.Sprintf("no %s found", what),
	}
}

// SeekPrefix advances the cursor until a line starts with prefix
// after trimming and returns that line, cursor just past it.
func (l *Lines) SeekPrefix(prefix string) (string, error) {
	return l.SeekFunc(Prefix(prefix),
		fmt.Sprintf("line starting with %q", prefix))
}

// SeekContains advances the cursor until a line contains substr and
// returns that line, cursor just past it.
func (l *Lines) SeekContains(substr string) (string, error) {
	return l.SeekFunc(Contains(substr),
		fmt.Sprintf("line containing %q", substr))
}

// A Kind classifies one kind of line within a homogeneous block and
// tokenizes its payload. Kinds sharing a Bucket accumulate their
// tokens into the same ordered list.
type Kind struct {
	Match  func(string) bool
	Tokens func(string) []string
	Bucket int
}

// Gather consumes consecutive lines matching one of kinds, appending
// each line's tokens to its kind's bucket. The first line matching
// no kind is un-read before returning, so the boundary line is left
// for the caller. n reports how many lines were consumed; callers
// decide whether an empty block is an error.
func (l *Lines) Gather(kinds ...Kind) (buckets [][]string, n int) {
	nb := 1
	for _, k := range kinds {
		if k.Bucket >= nb {
			nb = k.Bucket + 1
		}
	}
	buckets = make([][]string, nb)
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		matched := false
		for _, k := range kinds {
			if k.Match(line) {
				buckets[k.Bucket] = append(buckets[k.Bucket],
					k.Tokens(line)...)
				matched = true
				n++
				break
			}
		}
		if !matched {
			l.Back()
			break
		}
	}
	return buckets, n
}

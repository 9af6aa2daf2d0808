package qm4d

import (
	"fmt"
	"os"
	"strings"

	"ymei/qcutil/scan"
)

// All is the block name that applies an editing operation to every
// block of an Input.
const All = "all"

// A Cmd is one whitespace-separated QM4D command line, like
// "xyz mol.xyz".
type Cmd []string

// ParseCmd splits a raw command line into a Cmd.
func ParseCmd(s string) Cmd {
	return Cmd(strings.Fields(s))
}

func (c Cmd) String() string {
	return strings.Join(c, " ")
}

// index locates the value slot step places after key
func (c Cmd) index(key string, step int) (int, error) {
	key = strings.TrimSpace(key)
	for i, f := range c {
		if f == key {
			idx := i + step
			if idx < 0 || idx >= len(c) {
				return 0, fmt.Errorf(
					"index %d out of command line's range %d",
					idx, len(c))
			}
			return idx, nil
		}
	}
	return 0, fmt.Errorf("%s is not in command line", key)
}

// Get returns the value step fields after key.
func (c Cmd) Get(key string, step int) (string, error) {
	idx, err := c.index(key, step)
	if err != nil {
		return "", err
	}
	return c[idx], nil
}

// Update replaces the value step fields after key.
func (c Cmd) Update(key string, step int, value string) error {
	idx, err := c.index(key, step)
	if err != nil {
		return err
	}
	c[idx] = strings.TrimSpace(value)
	return nil
}

// An Input is a QM4D input file held as ordered command blocks. A
// block starts at a line beginning with $, like $qm or $doqm, and
// usually closes with an end keyword, which is kept as an ordinary
// block line. Lines before the first block are discarded.
type Input struct {
	Path   string
	names  []string
	blocks map[string][]string
}

// LoadInput parses the QM4D input file at filename.
func LoadInput(filename string) (*Input, error) {
	l, err := scan.Load(filename)
	if err != nil {
		return nil, err
	}
	in := &Input{Path: filename, blocks: make(map[string][]string)}
	var cur string
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "$") {
			cur = line
			in.names = append(in.names, cur)
			in.blocks[cur] = []string{}
			continue
		}
		if cur != "" {
			in.blocks[cur] = append(in.blocks[cur], line)
		}
	}
	return in, nil
}

func (in *Input) String() string {
	var str strings.Builder
	for _, name := range in.names {
		fmt.Fprintln(&str, name)
		for _, line := range in.blocks[name] {
			fmt.Fprintln(&str, line)
		}
	}
	return str.String()
}

// Write writes the input content to filename.
func (in *Input) Write(filename string) error {
	return os.WriteFile(filename, []byte(in.String()), 0644)
}

// Blocks returns the block names in file order.
func (in *Input) Blocks() []string {
	ret := make([]string, len(in.names))
	copy(ret, in.names)
	return ret
}

// Has reports whether the input contains the named block.
func (in *Input) Has(block string) bool {
	_, ok := in.blocks[strings.TrimSpace(block)]
	return ok
}

// startsWith reports whether the fields of line begin with pattern's
// fields
func startsWith(line, pattern []string) bool {
	if len(line) < len(pattern) {
		return false
	}
	for i := range pattern {
		if line[i] != pattern[i] {
			return false
		}
	}
	return true
}

// targets resolves block to the list of block names to operate on
func (in *Input) targets(block string) []string {
	if block == All {
		return in.names
	}
	return []string{strings.TrimSpace(block)}
}

// Find returns the lines in block whose leading fields match
// pattern's fields. Pass All to search every block.
func (in *Input) Find(block, pattern string) (ret []string) {
	pat := strings.Fields(pattern)
	for _, name := range in.targets(block) {
		for _, line := range in.blocks[name] {
			if startsWith(strings.Fields(line), pat) {
				ret = append(ret, line)
			}
		}
	}
	return ret
}

// FindFirst returns the first line matching pattern in block.
func (in *Input) FindFirst(block, pattern string) (string, error) {
	found := in.Find(block, pattern)
	if len(found) == 0 {
		return "", fmt.Errorf(
			"no matched line found from input, pattern: %s", pattern)
	}
	return found[0], nil
}

// FindLast returns the last line matching pattern in block.
func (in *Input) FindLast(block, pattern string) (string, error) {
	found := in.Find(block, pattern)
	if len(found) == 0 {
		return "", fmt.Errorf(
			"no matched line found from input, pattern: %s", pattern)
	}
	return found[len(found)-1], nil
}

// ReplaceLine replaces every line in block matching line with
// newLine and returns the number of replacements.
func (in *Input) ReplaceLine(block, line, newLine string) int {
	pat := strings.Fields(line)
	newLine = strings.TrimSpace(newLine)
	n := 0
	for _, name := range in.targets(block) {
		lines := in.blocks[name]
		for i := range lines {
			if startsWith(strings.Fields(lines[i]), pat) {
				lines[i] = newLine
				n++
			}
		}
	}
	return n
}

// Insert adds cmd to block at position: "head" puts it first, "end"
// puts it before the closing end keyword, and any other string is a
// pattern whose first matching line the command is inserted after.
// A missing block is created.
func (in *Input) Insert(block, cmd, position string) error {
	block = strings.TrimSpace(block)
	cmd = strings.TrimSpace(cmd)
	if !in.Has(block) {
		in.names = append(in.names, block)
		in.blocks[block] = []string{cmd}
		return nil
	}
	lines := in.blocks[block]
	idx := -1
	switch position {
	case "head":
		idx = 0
	case "end":
		idx = len(lines)
		for i, line := range lines {
			if line == "end" {
				idx = i
				break
			}
		}
	default:
		pat := strings.Fields(position)
		for i, line := range lines {
			if startsWith(strings.Fields(line), pat) {
				idx = i + 1
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf(
				"no matching position found based on %s", position)
		}
	}
	lines = append(lines, "")
	copy(lines[idx+1:], lines[idx:])
	lines[idx] = cmd
	in.blocks[block] = lines
	return nil
}

// DeleteLine removes every line in block matching cmd and returns
// the number of deletions.
func (in *Input) DeleteLine(block, cmd string) int {
	pat := strings.Fields(cmd)
	n := 0
	for _, name := range in.targets(block) {
		kept := make([]string, 0, len(in.blocks[name]))
		for _, line := range in.blocks[name] {
			if startsWith(strings.Fields(line), pat) {
				n++
			} else {
				kept = append(kept, line)
			}
		}
		in.blocks[name] = kept
	}
	return n
}

// DeleteBlock removes the named block entirely.
func (in *Input) DeleteBlock(block string) {
	block = strings.TrimSpace(block)
	delete(in.blocks, block)
	for i, name := range in.names {
		if name == block {
			in.names = append(in.names[:i], in.names[i+1:]...)
			break
		}
	}
}

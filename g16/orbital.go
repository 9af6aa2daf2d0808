// Package g16 extracts orbital data and energies from Gaussian
// output files. The extraction functions take a scan.Lines cursor
// and read forward from its current position, so repeated occurrences
// in one log can be pulled by calling them again on the same cursor.
package g16

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ymei/qcutil/scan"
)

// An Orbital pairs a symmetry label with its eigenvalue in hartrees.
// Label holds the occurrence-indexed symmetry (1A1, 2A1, ...) when
// labeling was requested.
type Orbital struct {
	Symmetry string
	Energy   float64
	Label    string
}

// orbitals within degenEps of each other share a symmetry index
const degenEps = 1e-4

// eigenvalue line markers, matched after whitespace trimming
const (
	alphaOcc  = "Alpha  occ. eigenvalues --"
	alphaVirt = "Alpha virt. eigenvalues --"
	betaOcc   = "Beta  occ. eigenvalues --"
	betaVirt  = "Beta virt. eigenvalues --"
)

// ElectronCount returns the alpha and beta electron counts from a
// Gaussian log.
func ElectronCount(l *scan.Lines) (alpha, beta float64, err error) {
	line, err := l.SeekContains("alpha electrons")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, 0, &scan.FormatError{
			Name: l.Name,
			Line: line,
			Msg:  "malformed electron count line",
		}
	}
	alpha, err = strconv.ParseFloat(fields[0], 64)
	if err == nil {
		beta, err = strconv.ParseFloat(fields[3], 64)
	}
	return alpha, beta, err
}

var parens = strings.NewReplacer("(", " ", ")", " ")

// symTokens strips parentheses and yields the symmetry labels on a
// continuation line
func symTokens(line string) []string {
	return strings.Fields(parens.Replace(line))
}

// markedTokens is symTokens minus the leading Occupied/Virtual marker
func markedTokens(line string) []string {
	return symTokens(line)[1:]
}

var symKinds = []scan.Kind{
	{Match: scan.Prefix("Occupied"), Tokens: markedTokens},
	{Match: scan.Prefix("Virtual"), Tokens: markedTokens},
	{Match: scan.Prefix("("), Tokens: symTokens},
}

// symBlock reads one run of symmetry lines for a single spin. The
// cursor must sit at the first Occupied line of the run; it is left
// at the first line past the run.
func symBlock(l *scan.Lines) ([]string, error) {
	start := l.Pos()
	buckets, n := l.Gather(symKinds...)
	if n == 0 {
		return nil, &scan.NotFoundError{
			Name:  l.Name,
			Start: start,
			Msg:   "no orbital symmetries found",
		}
	}
	return buckets[0], nil
}

// OrbitalSymmetries extracts the first set of orbital symmetries at
// or after the cursor, one label slice per spin channel. Restricted
// calculations yield one channel, unrestricted two.
func OrbitalSymmetries(l *scan.Lines) ([][]string, error) {
	if _, err := l.SeekPrefix("Orbital symmetries:"); err != nil {
		return nil, err
	}
	line, ok := l.Next()
	if !ok {
		return nil, &scan.FormatError{
			Name: l.Name,
			Msg:  "source ends at the orbital symmetry header",
		}
	}
	switch trimmed := strings.TrimSpace(line); {
	case strings.HasPrefix(trimmed, "Occupied"):
		l.Back()
		syms, err := symBlock(l)
		if err != nil {
			return nil, err
		}
		return [][]string{syms}, nil
	case strings.HasPrefix(trimmed, "Alpha Orbitals:"):
		alpha, err := symBlock(l)
		if err != nil {
			return nil, err
		}
		l.Next() // Beta Orbitals: separator
		beta, err := symBlock(l)
		if err != nil {
			return nil, err
		}
		return [][]string{alpha, beta}, nil
	}
	return nil, &scan.FormatError{
		Name: l.Name,
		Line: line,
		Msg:  "expected Occupied or Alpha Orbitals: after symmetry header",
	}
}

// eigTokens yields the eigenvalue fields of a line after stripping
// its marker prefix
func eigTokens(prefix string) func(string) []string {
	return func(line string) []string {
		return strings.Fields(strings.Replace(line, prefix, "", 1))
	}
}

var eigKinds = []scan.Kind{
	{Match: scan.Prefix(alphaOcc), Tokens: eigTokens(alphaOcc), Bucket: 0},
	{Match: scan.Prefix(alphaVirt), Tokens: eigTokens(alphaVirt), Bucket: 0},
	{Match: scan.Prefix(betaOcc), Tokens: eigTokens(betaOcc), Bucket: 1},
	{Match: scan.Prefix(betaVirt), Tokens: eigTokens(betaVirt), Bucket: 1},
}

// OrbitalEnergies extracts the first set of orbital eigenvalues at
// or after the cursor, one slice per spin channel. The beta channel
// is dropped for restricted calculations, where it is empty.
func OrbitalEnergies(l *scan.Lines) ([][]float64, error) {
	if _, err := l.SeekPrefix(alphaOcc); err != nil {
		return nil, err
	}
	l.Back()
	buckets, _ := l.Gather(eigKinds...)
	ret := make([][]float64, 0, 2)
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		vals, err := parseFloats(l, b)
		if err != nil {
			return nil, err
		}
		ret = append(ret, vals)
	}
	return ret, nil
}

func parseFloats(l *scan.Lines, fields []string) ([]float64, error) {
	ret := make([]float64, len(fields))
	var err error
	for i, f := range fields {
		ret[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &scan.FormatError{
				Name: l.Name,
				Line: f,
				Msg:  "eigenvalue failed to parse",
			}
		}
	}
	return ret, nil
}

// Orbitals extracts the first set of orbital symmetries together
// with the eigenvalue block that follows it and zips them into
// per-channel Orbital records. With label set, each orbital also
// receives its occurrence-indexed symmetry label. The two blocks
// must describe the same orbital set; any shape disagreement is a
// MismatchError.
func Orbitals(l *scan.Lines, label bool) ([][]Orbital, error) {
	syms, err := OrbitalSymmetries(l)
	if err != nil {
		return nil, err
	}
	// only the electronic state line and blanks may sit between
	// the symmetries and their eigenvalues
	for {
		line, ok := l.Next()
		switch trimmed := strings.TrimSpace(line); {
		case !ok:
			return nil, &scan.NotFoundError{
				Name:  l.Name,
				Start: l.Pos(),
				Msg:   "no orbital energies follow the symmetries",
			}
		case strings.HasPrefix(trimmed, alphaOcc):
			l.Back()
		case trimmed == "" ||
			strings.Contains(trimmed, "electronic state"):
			continue
		default:
			return nil, &scan.FormatError{
				Name: l.Name,
				Line: line,
				Msg:  "no orbital energies follow the symmetries",
			}
		}
		break
	}
	eigs, err := OrbitalEnergies(l)
	if err != nil {
		return nil, err
	}
	if len(eigs) != len(syms) {
		return nil, &scan.MismatchError{
			Name: l.Name,
			Msg: fmt.Sprintf(
				"%d symmetry channels but %d energy channels",
				len(syms), len(eigs)),
		}
	}
	channels := make([][]Orbital, len(syms))
	for i := range syms {
		if len(syms[i]) != len(eigs[i]) {
			return nil, &scan.MismatchError{
				Name: l.Name,
				Msg: fmt.Sprintf(
					"channel %d has %d symmetries but %d energies",
					i, len(syms[i]), len(eigs[i])),
			}
		}
		orbs := make([]Orbital, len(syms[i]))
		for j := range orbs {
			orbs[j] = Orbital{
				Symmetry: syms[i][j],
				Energy:   eigs[i][j],
			}
		}
		if label {
			LabelDegenerate(orbs)
		}
		channels[i] = orbs
	}
	return channels, nil
}

// LabelDegenerate assigns each orbital its occurrence-indexed
// symmetry label in place. Adjacent orbitals of the same symmetry
// whose energies differ by less than 1e-4 hartree are degenerate and
// share one label, so a doubly degenerate E pair reads 1E 1E, not 1E
// 2E.
func LabelDegenerate(orbs []Orbital) {
	count := make(map[string]int)
	for i := range orbs {
		if i > 0 && orbs[i].Symmetry == orbs[i-1].Symmetry &&
			math.Abs(orbs[i].Energy-orbs[i-1].Energy) < degenEps {
			orbs[i].Label = orbs[i-1].Label
			continue
		}
		count[orbs[i].Symmetry]++
		orbs[i].Label = strconv.Itoa(count[orbs[i].Symmetry]) +
			orbs[i].Symmetry
	}
}

// Package qm4d parses QM4D output files and edits QM4D input files.
// Like g16, the extraction functions walk a scan.Lines cursor
// forward from its current position and leave it placed for further
// scanning.
package qm4d

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ymei/qcutil/scan"
)

// column names printed for post-LOSC eigenvalues
var postEigNames = []string{"eig_dfa", "eig_proj", "eig_direct", "eig_diag"}

// ElectronCount returns the alpha and beta electron counts from a
// QM4D output.
func ElectronCount(l *scan.Lines) (alpha, beta float64, err error) {
	line, err := l.SeekPrefix("Alpha electrons =")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(strings.ReplaceAll(line, "=", " "))
	if len(fields) < 3 {
		return 0, 0, &scan.FormatError{
			Name: l.Name,
			Line: line,
			Msg:  "malformed electron count line",
		}
	}
	alpha, err = strconv.ParseFloat(fields[2], 64)
	if err == nil {
		beta, err = strconv.ParseFloat(fields[len(fields)-1], 64)
	}
	return alpha, beta, err
}

// An EigTable holds eigenvalue rows keyed by the column names
// printed in the output. SCF listings carry the fixed columns is, i,
// eig_dfa, and occ; post-LOSC listings carry whatever the output
// prints, usually is, i, and the four eig_* columns.
type EigTable struct {
	Columns []string
	Data    [][]float64
}

// col returns the index of the named column
func (t *EigTable) col(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column %q in eigenvalue table", name)
}

// spins counts the distinct values in the is column
func (t *EigTable) spins() int {
	ci, err := t.col("is")
	if err != nil {
		return 0
	}
	seen := make(map[int]bool)
	for _, row := range t.Data {
		seen[int(row[ci])] = true
	}
	return len(seen)
}

// find returns the row with the given spin and orbital index as a
// column name to value map
func (t *EigTable) find(spin, idx int) (map[string]float64, error) {
	ci, err := t.col("is")
	if err != nil {
		return nil, err
	}
	cj, err := t.col("i")
	if err != nil {
		return nil, err
	}
	for _, row := range t.Data {
		if int(row[ci]) == spin && int(row[cj]) == idx {
			ret := make(map[string]float64, len(t.Columns))
			for k, name := range t.Columns {
				ret[name] = row[k]
			}
			return ret, nil
		}
	}
	return nil, fmt.Errorf("no orbital with spin %d and index %d", spin, idx)
}

// SCFEigs extracts the SCF eigenvalue listing at or after the
// cursor. Rows are ordered spin 0 first, orbital indices 0-based,
// with columns is, i, eig_dfa, and occ.
func SCFEigs(l *scan.Lines) (*EigTable, error) {
	start := l.Pos()
	t := &EigTable{Columns: []string{"is", "i", "eig_dfa", "occ"}}
	for spin := 0; spin < 2; spin++ {
		anchor := fmt.Sprintf("Eigenvalues of spin=  %d :", spin)
		if _, err := l.SeekPrefix(anchor); err != nil {
			break
		}
		l.Next() // column header line
		if err := scfRows(l, spin, t); err != nil {
			return nil, err
		}
	}
	if len(t.Data) == 0 {
		return nil, &scan.NotFoundError{
			Name:  l.Name,
			Start: start,
			Msg:   "no SCF eigenvalues found",
		}
	}
	return t, nil
}

// scfRows reads one spin's eigenvalue rows, stopping at the Total
// electron number line that closes the listing.
func scfRows(l *scan.Lines, spin int, t *EigTable) error {
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		if strings.HasPrefix(line, "Total electron number:") {
			break
		}
		fields := strings.Fields(strings.ReplaceAll(line, ":", " "))
		if len(fields) < 3 {
			return &scan.FormatError{
				Name: l.Name,
				Line: line,
				Msg:  "malformed eigenvalue row",
			}
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return &scan.FormatError{
				Name: l.Name, Line: line,
				Msg: "malformed eigenvalue row",
			}
		}
		eig, err1 := strconv.ParseFloat(fields[2], 64)
		occ, err2 := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err1 != nil || err2 != nil {
			return &scan.FormatError{
				Name: l.Name, Line: line,
				Msg: "malformed eigenvalue row",
			}
		}
		t.Data = append(t.Data,
			[]float64{float64(spin), float64(idx - 1), eig, occ})
	}
	return nil
}

// loscEigLine matches one post-LOSC eigenvalue row
func loscEigLine(line string) bool {
	return strings.HasPrefix(line, "is=") &&
		strings.Contains(line, "eig_dfa") &&
		strings.Contains(line, "eig_proj")
}

// PostLOSCEigs extracts the post-SCF-LOSC eigenvalue table at or
// after the cursor. The rows are assumed contiguous; the first
// non-matching line after them ends the table and is left unread.
func PostLOSCEigs(l *scan.Lines) (*EigTable, error) {
	if _, err := l.SeekFunc(loscEigLine, "post-LOSC eigenvalue lines"); err != nil {
		return nil, err
	}
	l.Back()
	buckets, _ := l.Gather(scan.Kind{
		Match: loscEigLine,
		Tokens: func(line string) []string {
			return []string{strings.TrimSpace(line)}
		},
	})
	rows := buckets[0]
	t := &EigTable{}
	for i, f := range strings.Fields(strings.ReplaceAll(rows[0], "=", " ")) {
		if i%2 == 0 {
			t.Columns = append(t.Columns, f)
		}
	}
	for _, row := range rows {
		fields := strings.Fields(strings.ReplaceAll(row, "=", " "))
		if len(fields) != 2*len(t.Columns) {
			return nil, &scan.FormatError{
				Name: l.Name, Line: row,
				Msg: "ragged post-LOSC eigenvalue row",
			}
		}
		vals := make([]float64, 0, len(t.Columns))
		for i := 1; i < len(fields); i += 2 {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, &scan.FormatError{
					Name: l.Name, Line: row,
					Msg: "malformed post-LOSC eigenvalue row",
				}
			}
			vals = append(vals, v)
		}
		t.Data = append(t.Data, vals)
	}
	return t, nil
}

// IP returns the eigenvalue row corresponding to the ionization
// potential: the higher-lying of the alpha and beta HOMOs as judged
// by the basedOn column. aelec and belec are the electron counts.
func IP(t *EigTable, aelec, belec float64, basedOn string) (map[string]float64, error) {
	ahomo, bhomo := int(aelec)-1, int(belec)-1
	a, err := t.find(0, ahomo)
	if err != nil {
		return nil, err
	}
	if bhomo < 0 || t.spins() == 1 {
		return a, nil
	}
	b, err := t.find(1, bhomo)
	if err != nil {
		return nil, err
	}
	if a[basedOn] >= b[basedOn] {
		return a, nil
	}
	return b, nil
}

// EA returns the eigenvalue row corresponding to the electron
// affinity: the lower-lying of the alpha and beta LUMOs as judged by
// the basedOn column. On a degenerate tie the alpha row wins.
func EA(t *EigTable, aelec, belec float64, basedOn string) (map[string]float64, error) {
	a, err := t.find(0, int(aelec))
	if err != nil {
		return nil, err
	}
	if t.spins() == 1 {
		return a, nil
	}
	b, err := t.find(1, int(belec))
	if err != nil {
		return nil, err
	}
	if a[basedOn] <= b[basedOn] {
		return a, nil
	}
	return b, nil
}

func checkBasedOn(basedOn string) error {
	for _, name := range postEigNames {
		if basedOn == name {
			return nil
		}
	}
	return fmt.Errorf("invalid eigenvalue column %q, valid names are %v",
		basedOn, postEigNames)
}

// electrons reads the electron counts from l, requiring both to be
// integral
func electrons(l *scan.Lines) (aelec, belec float64, err error) {
	aelec, belec, err = ElectronCount(l)
	if err != nil {
		return
	}
	if aelec != math.Trunc(aelec) || belec != math.Trunc(belec) {
		err = fmt.Errorf("fractional electron counts (%v, %v) in %s",
			aelec, belec, l.Name)
	}
	return
}

// PostIP returns the post-LOSC eigenvalue row for the orbital
// corresponding to the ionization potential of the calculation in
// outfile. basedOn selects the column used to compare the spin
// channels.
func PostIP(outfile, basedOn string) (map[string]float64, error) {
	if err := checkBasedOn(basedOn); err != nil {
		return nil, err
	}
	l, err := scan.Load(outfile)
	if err != nil {
		return nil, err
	}
	aelec, belec, err := electrons(l)
	if err != nil {
		return nil, err
	}
	t, err := PostLOSCEigs(l)
	if err != nil {
		return nil, err
	}
	return IP(t, aelec, belec, basedOn)
}

// PostEA is PostIP for the electron affinity.
func PostEA(outfile, basedOn string) (map[string]float64, error) {
	if err := checkBasedOn(basedOn); err != nil {
		return nil, err
	}
	l, err := scan.Load(outfile)
	if err != nil {
		return nil, err
	}
	aelec, belec, err := electrons(l)
	if err != nil {
		return nil, err
	}
	t, err := PostLOSCEigs(l)
	if err != nil {
		return nil, err
	}
	return EA(t, aelec, belec, basedOn)
}

// SCFIP returns the SCF eigenvalue corresponding to the ionization
// potential of the calculation in outfile.
func SCFIP(outfile string) (float64, error) {
	l, err := scan.Load(outfile)
	if err != nil {
		return 0, err
	}
	aelec, belec, err := electrons(l)
	if err != nil {
		return 0, err
	}
	t, err := SCFEigs(l)
	if err != nil {
		return 0, err
	}
	row, err := IP(t, aelec, belec, "eig_dfa")
	if err != nil {
		return 0, err
	}
	return row["eig_dfa"], nil
}

// SCFEA returns the SCF eigenvalue corresponding to the electron
// affinity of the calculation in outfile.
func SCFEA(outfile string) (float64, error) {
	l, err := scan.Load(outfile)
	if err != nil {
		return 0, err
	}
	aelec, belec, err := electrons(l)
	if err != nil {
		return 0, err
	}
	t, err := SCFEigs(l)
	if err != nil {
		return 0, err
	}
	row, err := EA(t, aelec, belec, "eig_dfa")
	if err != nil {
		return 0, err
	}
	return row["eig_dfa"], nil
}

package qm4d

import (
	"fmt"
	"strconv"
	"strings"

	"ymei/qcutil/scan"
)

// Elements maps atomic number to element label.
var Elements = map[int]string{
	1: "H", 2: "He", 3: "Li", 4: "Be",
	5: "B", 6: "C", 7: "N", 8: "O",
	9: "F", 10: "Ne", 11: "Na", 12: "Mg",
	13: "Al", 14: "Si", 15: "P", 16: "S",
	17: "Cl", 18: "Ar", 19: "K", 20: "Ca",
	21: "Sc", 22: "Ti", 23: "V", 24: "Cr",
	25: "Mn", 26: "Fe", 27: "Co", 28: "Ni",
	29: "Cu", 30: "Zn", 31: "Ga", 32: "Ge",
	33: "As", 34: "Se", 35: "Br", 36: "Kr",
	37: "Rb", 38: "Sr", 39: "Y", 40: "Zr",
	41: "Nb", 42: "Mo", 43: "Tc", 44: "Ru",
	45: "Rh", 46: "Pd", 47: "Ag", 48: "Cd",
	49: "In", 50: "Sn", 51: "Sb", 52: "Te",
	53: "I", 54: "Xe", 55: "Cs", 56: "Ba",
	57: "La", 58: "Ce", 59: "Pr", 60: "Nd",
	61: "Pm", 62: "Sm", 63: "Eu", 64: "Gd",
	65: "Tb", 66: "Dy", 67: "Ho", 68: "Er",
	69: "Tm", 70: "Yb", 71: "Lu", 72: "Hf",
	73: "Ta", 74: "W", 75: "Re", 76: "Os",
	77: "Ir", 78: "Pt", 79: "Au", 80: "Hg",
	81: "Tl", 82: "Pb", 83: "Bi", 84: "Po",
	85: "At", 86: "Rn", 87: "Fr", 88: "Ra",
	89: "Ac", 90: "Th", 91: "Pa", 92: "U",
	93: "Np", 94: "Pu", 95: "Am", 96: "Cm",
	97: "Bk", 98: "Cf", 99: "Es", 100: "Fm",
	101: "Md", 102: "No", 103: "Lr", 104: "Rf",
	105: "Db", 106: "Sg", 107: "Bh", 108: "Hs",
	109: "Mt", 110: "Ds", 111: "Rg", 112: "Cn",
	113: "Nh", 114: "Fl", 115: "Mc", 116: "Lv",
	117: "Ts", 118: "Og",
}

// Numbers maps element label to atomic number.
var Numbers = make(map[string]int, len(Elements))

func init() {
	for n, e := range Elements {
		Numbers[e] = n
	}
}

// capitalize normalizes an element label like "cl" or "CL" to "Cl"
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// CountElements counts the atoms of each element in a QM4D xyz
// file. Lines whose first non-blank character is # are comments.
// Numeric atom labels are translated through the periodic table, and
// the count is checked against the atom total on the first line.
func CountElements(filename string) (map[string]int, error) {
	l, err := scan.Load(filename)
	if err != nil {
		return nil, err
	}
	var natom int
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		if n, err := strconv.Atoi(line); err == nil {
			natom = n
			l.Next() // title line
			break
		}
	}
	elements := make(map[string]int)
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		if strings.HasPrefix(strings.TrimSpace(line), "#") ||
			strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf(
				"invalid coordinates in xyz file %s: %q",
				filename, line)
		}
		element := capitalize(fields[0])
		if n, err := strconv.Atoi(element); err == nil {
			label, ok := Elements[n]
			if !ok {
				return nil, fmt.Errorf(
					"unknown atomic number %d in xyz file %s",
					n, filename)
			}
			element = label
		}
		elements[element]++
	}
	total := 0
	for _, v := range elements {
		total += v
	}
	if total != natom {
		return nil, fmt.Errorf(
			"wrong number of atoms in xyz file %s: counted %d, header says %d",
			filename, total, natom)
	}
	return elements, nil
}

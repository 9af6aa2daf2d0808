package qm4d

import (
	"math"
	"strconv"
	"strings"

	"ymei/qcutil/scan"
)

// lastField parses the final = separated field of line, or NaN
func lastField(line string) float64 {
	fields := strings.Fields(strings.ReplaceAll(line, "=", " "))
	if len(fields) == 0 {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// LOSCEnergy returns the post-SCF-LOSC total energy from a QM4D
// output file, or NaN if it cannot be found.
func LOSCEnergy(filename string) float64 {
	l, err := scan.Load(filename)
	if err != nil {
		return math.NaN()
	}
	line, err := l.SeekContains("E_tot_losc")
	if err != nil {
		return math.NaN()
	}
	return lastField(line)
}

// SCFEnergy returns the converged SCF total energy from a QM4D
// output file, or NaN if the SCF never converged.
func SCFEnergy(filename string) float64 {
	l, err := scan.Load(filename)
	if err != nil {
		return math.NaN()
	}
	line, err := l.SeekContains("SCF converged successfully. nIter")
	if err != nil {
		return math.NaN()
	}
	return lastField(line)
}

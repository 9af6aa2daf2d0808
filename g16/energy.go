package g16

import (
	"math"
	"strconv"
	"strings"

	"ymei/qcutil/scan"
)

// SCFEnergy returns the last SCF energy in a Gaussian log file, or
// NaN if there is none. A log holding several jobs reports one SCF
// Done line per optimization step, and the last one is the converged
// energy.
func SCFEnergy(filename string) float64 {
	l, err := scan.Load(filename)
	if err != nil {
		return math.NaN()
	}
	energy := math.NaN()
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		if !strings.HasPrefix(strings.TrimSpace(line), "SCF Done:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		if v, err := strconv.ParseFloat(fields[4], 64); err == nil {
			energy = v
		}
	}
	return energy
}

// FchkEnergy returns the total energy from a Gaussian formatted
// checkpoint file, or NaN if there is none.
func FchkEnergy(filename string) float64 {
	l, err := scan.Load(filename)
	if err != nil {
		return math.NaN()
	}
	line, err := l.SeekContains("Total Energy")
	if err != nil {
		return math.NaN()
	}
	fields := strings.Fields(line)
	v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

package qm4d

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/BurntSushi/toml"

	"ymei/qcutil/scan"
)

// RunConfig configures external QM4D invocations.
type RunConfig struct {
	Exe       string
	AppendOut bool
}

// LoadRunConfig loads a TOML runner configuration from filename,
// filling unset fields with defaults.
func LoadRunConfig(filename string) (RunConfig, error) {
	// Defaults
	rc := RunConfig{
		Exe: "qm4d",
	}
	cont, err := os.ReadFile(filename)
	if err != nil {
		return rc, err
	}
	err = toml.Unmarshal(cont, &rc)
	return rc, err
}

// An SCFError means QM4D ran but its SCF procedure failed or never
// started.
type SCFError struct {
	Output string
	Msg    string
}

func (e *SCFError) Error() string {
	return fmt.Sprintf("%s, check output file %q", e.Msg, e.Output)
}

// CheckSCF scans a QM4D output file for evidence that the SCF
// procedure ran and converged.
func CheckSCF(outfile string) error {
	l, err := scan.Load(outfile)
	if err != nil {
		return err
	}
	var entered, converged bool
	for line, ok := l.Next(); ok; line, ok = l.Next() {
		if !entered && strings.HasPrefix(line, "ITER=") &&
			strings.Contains(line, "DeltaE") {
			entered = true
		}
		if strings.HasPrefix(line, "SCF converged successfully.") {
			converged = true
			break
		}
	}
	switch {
	case !entered:
		return &SCFError{
			Output: outfile,
			Msg:    "QM4D did not enter the SCF procedure",
		}
	case !converged:
		return &SCFError{
			Output: outfile,
			Msg:    "QM4D SCF failed to converge",
		}
	}
	return nil
}

// Run executes QM4D on infile, directing its stdout to outfile. If
// the input requests a QM calculation via a $doqm block, the output
// is checked for SCF convergence afterward.
func Run(conf RunConfig, infile, outfile string) error {
	exe, err := exec.LookPath(conf.Exe)
	if err != nil {
		return err
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if conf.AppendOut {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	of, err := os.OpenFile(outfile, flags, 0644)
	if err != nil {
		return err
	}
	defer of.Close()
	cmd := exec.Command(exe, infile)
	cmd.Stdout = of
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("QM4D runtime error: %w", err)
	}
	in, err := LoadInput(infile)
	if err != nil {
		return err
	}
	if in.Has("$doqm") {
		return CheckSCF(outfile)
	}
	return nil
}

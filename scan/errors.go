package scan

import "fmt"

// NotFoundError means a search pattern was never located before the
// end of the source. Start is the cursor position where the search
// began.
type NotFoundError struct {
	Name  string
	Start int
	Msg   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s, searching from line %d",
		e.Name, e.Msg, e.Start)
}

// MismatchError means two parallel extractions disagree about the
// shape of the data, like a symmetry block and an eigenvalue block
// describing different numbers of orbitals.
type MismatchError struct {
	Name string
	Msg  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

// FormatError means a line required to match a known pattern did
// not. Line holds the offending content.
type FormatError struct {
	Name string
	Line string
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Name, e.Msg, e.Line)
}

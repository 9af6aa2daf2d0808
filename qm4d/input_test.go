package qm4d

import (
	"reflect"
	"testing"
)

func loadWater(t *testing.T) *Input {
	t.Helper()
	in, err := LoadInput("testfiles/water.inp")
	if err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	return in
}

func TestLoadInput(t *testing.T) {
	in := loadWater(t)
	want := []string{"$qm", "$doqm"}
	if got := in.Blocks(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	wantStr := `$qm
xyz water.xyz
basis 6-31G
guess atom
end
$doqm
method dft b3lyp
iter 200
end
`
	if got := in.String(); got != wantStr {
		t.Errorf("got\n%#v, wanted\n%#v\n", got, wantStr)
	}
}

func TestFind(t *testing.T) {
	in := loadWater(t)
	tests := []struct {
		block   string
		pattern string
		want    []string
	}{
		{"$qm", "xyz", []string{"xyz water.xyz"}},
		{All, "method dft", []string{"method dft b3lyp"}},
		{All, "end", []string{"end", "end"}},
		{"$qm", "missing", nil},
	}
	for _, test := range tests {
		got := in.Find(test.block, test.pattern)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("got %v, wanted %v\n", got, test.want)
		}
	}
}

func TestFindFirstLast(t *testing.T) {
	in := loadWater(t)
	if _, err := in.FindFirst("$qm", "nope"); err == nil {
		t.Errorf("wanted an error for a missing pattern")
	}
	got, err := in.FindLast(All, "end")
	if err != nil || got != "end" {
		t.Errorf("got (%q, %v), wanted (%q, nil)\n", got, err, "end")
	}
}

func TestReplaceLine(t *testing.T) {
	in := loadWater(t)
	n := in.ReplaceLine("$qm", "basis", "basis cc-pVDZ")
	if n != 1 {
		t.Errorf("got %d replacements, wanted 1\n", n)
	}
	got, _ := in.FindFirst("$qm", "basis")
	if got != "basis cc-pVDZ" {
		t.Errorf("got %q, wanted %q\n", got, "basis cc-pVDZ")
	}
}

func TestInsert(t *testing.T) {
	in := loadWater(t)
	// before the closing end
	if err := in.Insert("$qm", "charge 0", "end"); err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	// first line of the block
	if err := in.Insert("$qm", "spin 1", "head"); err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	// after a matched line
	if err := in.Insert("$qm", "fitbasis DGA1", "basis"); err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	want := []string{
		"spin 1",
		"xyz water.xyz",
		"basis 6-31G",
		"fitbasis DGA1",
		"guess atom",
		"charge 0",
		"end",
	}
	if got := in.blocks["$qm"]; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	if err := in.Insert("$qm", "x", "no such line"); err == nil {
		t.Errorf("wanted an error for an unmatched position")
	}
	// inserting into a missing block creates it
	in.Insert("$pause", "", "end")
	if !in.Has("$pause") {
		t.Errorf("wanted the new block to exist")
	}
}

func TestDelete(t *testing.T) {
	in := loadWater(t)
	if n := in.DeleteLine("$qm", "guess"); n != 1 {
		t.Errorf("got %d deletions, wanted 1\n", n)
	}
	if got := in.Find(All, "guess"); got != nil {
		t.Errorf("got %v, wanted nil\n", got)
	}
	in.DeleteBlock("$doqm")
	want := []string{"$qm"}
	if got := in.Blocks(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestCmd(t *testing.T) {
	c := ParseCmd("  xyz   mol.xyz ")
	if c.String() != "xyz mol.xyz" {
		t.Errorf("got %q, wanted %q\n", c.String(), "xyz mol.xyz")
	}
	got, err := c.Get("xyz", 1)
	if err != nil || got != "mol.xyz" {
		t.Errorf("got (%q, %v), wanted (%q, nil)\n", got, err, "mol.xyz")
	}
	if err := c.Update("xyz", 1, " new.xyz"); err != nil {
		t.Fatalf("got an error %v, didn't want one", err)
	}
	if c.String() != "xyz new.xyz" {
		t.Errorf("got %q, wanted %q\n", c.String(), "xyz new.xyz")
	}
	if _, err := c.Get("missing", 1); err == nil {
		t.Errorf("wanted an error for a missing key")
	}
	if _, err := c.Get("new.xyz", 1); err == nil {
		t.Errorf("wanted an error for an out of range step")
	}
}

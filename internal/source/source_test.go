package source

import "testing"

func TestNormalizeRows_NFC(t *testing.T) {
	// "é" as base letter + combining acute accent.
	decomposed := "Te\u0301ma"

	rows := NormalizeRows([][]string{{decomposed, "ok"}})

	if rows[0][0] != "T\u00e9ma" {
		t.Errorf("cell = %q, want composed form %q", rows[0][0], "T\u00e9ma")
	}
	if rows[0][1] != "ok" {
		t.Errorf("plain cell changed: %q", rows[0][1])
	}
}

func TestNormalizeRows_PreservesShape(t *testing.T) {
	rows := NormalizeRows([][]string{{"a", "b", "c"}, {}, {"d"}})

	if len(rows) != 3 || len(rows[0]) != 3 || len(rows[1]) != 0 || len(rows[2]) != 1 {
		t.Errorf("shape not preserved: %v", rows)
	}
}

package buyers

import "testing"

func TestShouldExclude(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want bool
	}{
		{"THIAGO SILVA", true},
		{"thiago silva", true},
		{"  Rose Mendes  ", true},
		{"ANDERSON", true},
		{"PEDRO HENRIQUE LIMA", true},
		{"MARIA SILVA", false},
		{"JOSE LIMA", false},
		// Em branco não é excluído: agrega sob o rótulo próprio.
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		if got := ShouldExclude(c.name); got != c.want {
			t.Fatalf("ShouldExclude(%q): want=%v got=%v", c.name, c.want, got)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	if got := NormalizeLabel("  MARIA SILVA  "); got != "MARIA SILVA" {
		t.Fatalf("NormalizeLabel: want=%q got=%q", "MARIA SILVA", got)
	}
	if got := NormalizeLabel(""); got != BlankLabel {
		t.Fatalf("NormalizeLabel vazio: want=%q got=%q", BlankLabel, got)
	}
	if got := NormalizeLabel("   "); got != BlankLabel {
		t.Fatalf("NormalizeLabel espaços: want=%q got=%q", BlankLabel, got)
	}
}

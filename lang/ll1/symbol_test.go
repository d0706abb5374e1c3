package ll1

import "testing"

func TestSententialFormReplace(t *testing.T) {
	form := SententialForm{NonTerminal("A"), Terminal("x"), NonTerminal("A")}

	tests := []struct {
		name string
		nt   NonTerminal
		rhs  Production
		want string
	}{
		{"leftmost occurrence", "A", Production{Terminal("y"), NonTerminal("B")}, "y B x A"},
		{"epsilon", "A", Production{}, "x A"},
		{"absent", "C", Production{Terminal("z")}, "A x A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := form.Replace(tt.nt, tt.rhs)
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if form.String() != "A x A" {
				t.Errorf("receiver modified: %q", form)
			}
		})
	}
}

func TestSententialFormReplaceDoesNotAlias(t *testing.T) {
	base := make(SententialForm, 0, 8)
	base = append(base, NonTerminal("A"), NonTerminal("B"))

	first := base.Replace("A", Production{Terminal("a")})
	second := base.Replace("A", Production{Terminal("b")})

	if first.String() != "a B" || second.String() != "b B" {
		t.Errorf("got %q and %q", first, second)
	}
}

func TestEmptyForms(t *testing.T) {
	if got := (SententialForm{}).String(); got != "epsilon" {
		t.Errorf("form: got %q", got)
	}
	if got := (Production{}).String(); got != "epsilon" {
		t.Errorf("production: got %q", got)
	}
	last := SententialForm{NonTerminal("A")}.Replace("A", nil)
	if got := last.String(); got != "epsilon" {
		t.Errorf("vanished form: got %q", got)
	}
}

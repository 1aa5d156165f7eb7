package mode

import "testing"

func TestMode_IsValid(t *testing.T) {
	for _, m := range []Mode{Lexical, Vector, Hybrid} {
		if !m.IsValid() {
			t.Errorf("expected %q to be valid", m)
		}
	}

	for _, m := range []Mode{"", "semantic", "LEXICAL", "hybrid "} {
		if m.IsValid() {
			t.Errorf("expected %q to be invalid", m)
		}
	}
}

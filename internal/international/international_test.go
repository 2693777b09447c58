package international

import "testing"

func TestSuffixClassifierDefaults(t *testing.T) {
	c := NewSuffixClassifier()

	tests := []struct {
		recipient string
		want      bool
	}{
		{"friend@example.co.uk", true},
		{"friend@example.ca", true},
		{"shop@store.de", true},
		{"friend@example.com", false},
		{"friend@example.org", false},
		{"", false},
		// Matching is suffix-only, so a foreign TLD elsewhere in the
		// identifier does not count.
		{"uk.person@example.com", false},
	}

	for _, tt := range tests {
		if got := c.IsInternational(tt.recipient); got != tt.want {
			t.Errorf("IsInternational(%q) = %v, want %v", tt.recipient, got, tt.want)
		}
	}
}

func TestSuffixClassifierCustomSuffixes(t *testing.T) {
	c := NewSuffixClassifier(".mx", ".br")

	if !c.IsInternational("amigo@correo.mx") {
		t.Error("custom suffix .mx must classify as international")
	}
	if c.IsInternational("friend@example.co.uk") {
		t.Error("default suffixes must not apply when custom ones are given")
	}
}

func TestFuncAdapter(t *testing.T) {
	c := Func(func(recipient string) bool { return recipient == "abroad" })

	if !c.IsInternational("abroad") {
		t.Error("Func adapter must delegate to the wrapped function")
	}
	if c.IsInternational("home") {
		t.Error("Func adapter must delegate to the wrapped function")
	}
}

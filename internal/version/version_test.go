package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestPretty(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	orig := Version
	defer func() { Version = orig }()

	Version = "0.1.0-dev"
	if got := Pretty(); got != "0.1.0-dev" {
		t.Fatalf("Pretty() = %q, want %q", got, "0.1.0-dev")
	}

	Version = "1.2.3"
	if got := Pretty(); got != "1.2.3" {
		t.Fatalf("Pretty() = %q, want %q", got, "1.2.3")
	}

	Version = "  "
	if got := Pretty(); got != "dev" {
		t.Fatalf("Pretty() on blank version = %q, want %q", got, "dev")
	}
}

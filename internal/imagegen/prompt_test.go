package imagegen

import (
	"strings"
	"testing"
)

func TestEnhancePrompt(t *testing.T) {
	got := EnhancePrompt("a raging storm over Tilted Towers")

	checks := []string{
		"Fortnite gamer",
		"blues and whites",
		`"a raging storm over Tilted Towers"`,
	}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("enhanced prompt missing %q: %s", expect, got)
		}
	}
}

func TestAspectRatioFor(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"make me a thumbnail for my channel", AspectWide},
		{"need a new pfp", AspectSquare},
		{"epic channel BANNER with my name", AspectWide},
		{"a logo with a llama", AspectSquare},
	}
	for _, tc := range cases {
		if got := AspectRatioFor(tc.prompt); got != tc.want {
			t.Errorf("AspectRatioFor(%q) = %s, want %s", tc.prompt, got, tc.want)
		}
	}
}

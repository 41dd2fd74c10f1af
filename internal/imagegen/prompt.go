package imagegen

import (
	"fmt"
	"strings"
)

const (
	// AspectSquare suits profile pictures and logos.
	AspectSquare = "1:1"
	// AspectWide suits YouTube thumbnails and channel banners.
	AspectWide = "16:9"
)

// wideKeywords mark prompts that want a wide-format asset.
var wideKeywords = []string{"thumbnail", "banner"}

// EnhancePrompt wraps the user's prompt in the fixed VerseGen branding
// template before it reaches the image model. The user text is quoted
// verbatim inside the template, never rewritten.
func EnhancePrompt(userPrompt string) string {
	return fmt.Sprintf(
		"A YouTube thumbnail or profile picture for a Fortnite gamer. "+
			"Style: Modern, clean, vibrant, eye-catching. Use blues and whites as primary colors. "+
			"User prompt: %q",
		strings.TrimSpace(userPrompt),
	)
}

// AspectRatioFor picks an output aspect ratio from the prompt text: a
// thumbnail-like keyword selects the wide format, everything else stays
// square.
func AspectRatioFor(userPrompt string) string {
	lowered := strings.ToLower(userPrompt)
	for _, kw := range wideKeywords {
		if strings.Contains(lowered, kw) {
			return AspectWide
		}
	}
	return AspectSquare
}

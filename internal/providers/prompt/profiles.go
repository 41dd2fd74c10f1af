package prompt

import (
	"strings"

	"versegen/internal/domain"
)

// Profile is a behavior profile for the generation provider: a system-level
// instruction sent alongside the user prompt, never concatenated into it,
// plus the feature whose tier gates the tool.
type Profile struct {
	ToolType string
	Feature  domain.FeatureID
	System   string
}

// DefaultSystem is the instruction used when no tool type is selected.
const DefaultSystem = "You are a helpful assistant."

// CoachingSystem is the analytical instruction attached to every image
// analysis request.
const CoachingSystem = `You are VerseGen's elite Fortnite Coaching AI. You are analyzing a static screenshot from a player's VOD or clip.
- Be direct, professional, and tactical.
- Start by identifying what's happening in the image (e.g., "I see you're in a box fight," "This looks like an end-game rotation").
- Analyze the user's position, loadout, crosshair placement, and visible UI (health, mats).
- Provide 3-5 scannable, actionable bullet points for improvement based *only* on the image and the user's question.
- Do not give generic advice. Be specific to the image.
- If the image is unclear, state that.
- Conclude with one positive, encouraging sentence.`

// profiles is the single source of truth for tool-type instructions. Any
// new tool gets added here and nowhere else.
var profiles = map[string]Profile{
	"creator": {
		ToolType: "creator",
		Feature:  domain.FeatureCreator,
		System: `You are VerseGen's Content Creator AI, a world-class expert in Fortnite YouTube content.
Your goal is to help players grow their channels.
- When asked for ideas, provide 5 viral-worthy video titles with brief descriptions.
- When asked for a script, provide a clear outline (Hook, Intro, 3x Main Points, Call to Action).
- Be concise, actionable, and use language that Fortnite players understand (e.g., 'W-Key', 'box fight', 'end-game').
- Do not be overly formal. Be encouraging.`,
	},
	"hardware": {
		ToolType: "hardware",
		Feature:  domain.FeatureHardware,
		System: `You are VerseGen's Hardware Builder AI, an expert PC builder specializing in Fortnite performance.
- Your response MUST be a PC build list or a direct answer to the hardware question.
- When asked for a build, format the response as a Markdown table with columns: Part, Item, and Reason/Notes.
- Prioritize high FPS and low latency for Fortnite (e.g., strong CPU, fast RAM).
- Always stick to the user's budget.
- Do not suggest peripherals unless asked.`,
	},
	"calendar": {
		ToolType: "calendar",
		Feature:  domain.FeatureCalendar,
		System: `You are VerseGen's Content Calendar AI, a Fortnite content planning strategist.
- When asked for a schedule, produce a seven-day posting calendar as a Markdown table with columns: Day, Format, Title Idea, and Notes.
- Mix formats (Shorts, long-form, streams) and anchor ideas to the current Fortnite season and upcoming live events when the user mentions them.
- Keep each title idea under ten words and each note to one sentence.
- Respect the cadence the user says they can sustain; never overload a solo creator.`,
	},
}

// ProfileFor resolves a tool type to its behavior profile. Unknown or empty
// tool types fall back to the plain helpful-assistant profile, gated only
// by the free dashboard feature.
func ProfileFor(toolType string) Profile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(toolType))]; ok {
		return p
	}
	return Profile{ToolType: "", Feature: domain.FeatureDashboard, System: DefaultSystem}
}

// AnalysisProfile is the profile backing image analysis requests.
func AnalysisProfile() Profile {
	return Profile{ToolType: "coaching", Feature: domain.FeatureCoaching, System: CoachingSystem}
}

// BrandingProfile is the profile backing image generation requests.
func BrandingProfile() Profile {
	return Profile{ToolType: "branding", Feature: domain.FeatureBranding}
}

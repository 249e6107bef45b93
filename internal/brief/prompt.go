package brief

import (
	"fmt"
	"strings"

	"dooze/internal/narration"
)

// SEOSeparator is the line the short-video prompt asks the model to place
// above the SEO pack. The narration splitter recognises it.
const SEOSeparator = "--- 🚀 KELENGKAPAN SEO (Auto-Generated) ---"

// Mode is the generation strategy picked for a brief.
type Mode string

const (
	ModeWebShowcase Mode = "web-showcase"
	ModeShortVideo  Mode = "short-video"
	ModeStory       Mode = "story"
	ModePromotion   Mode = "promotion"
)

// ModeFor picks the generation mode. Web showcases win over the platform;
// any other short-video platform gets the script plus SEO pack.
func ModeFor(b Brief) Mode {
	switch {
	case b.ContentType == narration.WebShowcase:
		return ModeWebShowcase
	case b.Platform.IsShortVideo():
		return ModeShortVideo
	case b.ContentType == narration.Story:
		return ModeStory
	default:
		return ModePromotion
	}
}

// Prompt is a rendered system instruction plus user prompt.
type Prompt struct {
	Mode   Mode
	System string
	User   string
}

// BuildPrompt renders the prompt for b. The brief should be normalized first.
func BuildPrompt(b Brief) Prompt {
	mode := ModeFor(b)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create content in %s.\n\n", b.Language.PromptName())
	sb.WriteString("INPUT DATA:\n")
	fmt.Fprintf(&sb, "Content Type: %s\n", b.ContentType)
	fmt.Fprintf(&sb, "Topic/Product: %s\n", b.ProductName)
	fmt.Fprintf(&sb, "Description/Tech Stack: %s\n", b.Description)
	fmt.Fprintf(&sb, "Target Audience: %s\n", b.TargetAudience)
	fmt.Fprintf(&sb, "Platform: %s\n", b.Platform)
	fmt.Fprintf(&sb, "Tone: %s\n", b.Tone)
	fmt.Fprintf(&sb, "Output Language: %s\n\n", b.Language.PromptName())
	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString(modeInstructions[mode])
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- Ensure the language is natural %s.\n", b.Language.Adjective())
	sb.WriteString("- IMPORTANT: If generating video scripts, strictly follow the SEO PACK requirements at the bottom.\n")

	return Prompt{
		Mode:   mode,
		System: systemInstruction(b, mode),
		User:   sb.String(),
	}
}

// systemInstruction follows the content type first so a story published as
// a short still gets the storyteller persona.
func systemInstruction(b Brief, mode Mode) string {
	switch {
	case b.ContentType == narration.WebShowcase:
		return "You are a Senior Developer Advocate and Tech Content Creator."
	case b.ContentType == narration.Story:
		return "You are a best-selling author and creative scriptwriter."
	case mode == ModeShortVideo:
		return "You are an Expert YouTube SEO Strategist and Viral Content Creator who understands the algorithm perfectly."
	default:
		return "You are a world-class copywriter and content strategist."
	}
}

var modeInstructions = map[Mode]string{
	ModeWebShowcase: `MODE: WEB DEVELOPER PORTFOLIO SHOWCASE

Task: Create a technical yet engaging presentation script to showcase a coding project or website.

Structure (adapt to the platform):
1. Hook: problem statement or visual hook.
2. The Solution: introduce the web app.
3. Tech Stack: mention the technologies used to show expertise.
4. Key Features: UX highlights.
5. Closing/CTA: view the demo or hire the developer.

Format:
- Use SCRIPT format with [Visual] instructions.
- Narrator: professional, competent, enthusiastic.
`,
	ModeShortVideo: `MODE: VIRAL SHORT VIDEO STRATEGY (High Retention & SEO)

PART 1: THE SCRIPT (15-60 seconds)
- Structure:
  1. HOOK (0-3s): stop the scroll immediately.
  2. VALUE (3-45s): deliver the core message or story fast.
  3. CTA (45-60s): clear instruction (subscribe, check the link).
- Format: standard script with [Visual Cues] and Narrator lines.

PART 2: THE SEO PACK (must be included at the bottom)
separator: "` + SEOSeparator + `"

A. 3 VIRAL TITLES (high CTR):
   - Use a curiosity gap, negativity bias, or a specific benefit.
   - Include the main keyword.
   - Keep each under 60 characters.

B. OPTIMIZED DESCRIPTION:
   - Paragraph 1: SEO hook with keywords in the first sentence.
   - Paragraph 2: quick summary of the value.
   - Paragraph 3: call to action and a placeholder for links.

C. TAGS & HASHTAGS:
   - 15-20 comma-separated tags mixing broad and long-tail keywords.
   - 5-10 hashtags for the niche.
`,
	ModeStory: `MODE: CREATIVE STORYTELLING

Task: Write an engaging story or entertainment script.
- Focus on drama, humor, or a moral message.
- Use STANDARD SCRIPT format.
`,
	ModePromotion: `MODE: MARKETING PROMOTION

Task: Write high-conversion ad copy (caption or email).
- Focus on benefits over features.
- Strong CTA.
`,
}

// VideoAnalysisPrompt asks the video model for a JSON object with the
// productName, description and targetAudience keys.
func VideoAnalysisPrompt(lang Language) string {
	langInstruction := "Gunakan BAHASA INDONESIA untuk output JSON."
	if lang == English {
		langInstruction = "Use ENGLISH for the JSON output."
	}
	return `Analyze this video.
` + langInstruction + `

Context:
1. Web/App demo: identify the app name, tech stack and UI/UX features.
2. Physical product: extract the product name and unique selling point.
3. Story: extract the plot or premise.

Return a valid JSON object with keys "productName", "description", "targetAudience".
- "productName": project or product name.
- "description": key features, stack, or plot.
- "targetAudience": who this is for.

Do not include markdown formatting or backticks, just raw JSON.
`
}

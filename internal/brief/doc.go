// Package brief models the content brief a script is generated from and
// assembles the prompts sent to the text and video models.
//
// A Brief names the content type, subject, audience, platform, tone and
// output language. BuildPrompt picks a generation mode from the content type
// and platform (web showcase, short video with SEO pack, story, or marketing
// copy) and renders the system and user prompts for it. The package also
// carries the voice catalogue and the localized user-facing failure messages.
package brief

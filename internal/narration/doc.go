// Package narration turns raw generated scripts into text a person reads or
// a speech engine speaks.
//
// A script mixes spoken narration with visual directions, speaker labels,
// markdown, timestamps, emoji and an appended SEO block. SplitSEO separates
// the SEO block, DisplayFilter produces paragraph text for the reading view,
// and SpeechFilter produces a single flat string for synthesis. Both filters
// are driven by keyword tables (RuleSet) keyed by ContentType.
//
// Everything here is pure: no I/O, no shared mutable state, safe for
// concurrent use, and no function returns an error. Atypical input degrades
// to weaker filtering instead of failing.
package narration
